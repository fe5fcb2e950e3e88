package sentiment

// Keyword lists for the heuristic tier. Matching is case-insensitive
// substring containment; the score formula is 0.6 + 0.1 per hit, capped at
// 0.95. Changing either the lists or the formula changes stored scores, so
// treat both as frozen.
var positiveKeywords = []string{
	"good", "great", "excellent", "amazing", "wonderful", "fantastic", "love",
	"best", "perfect", "awesome", "helpful", "thank", "thanks", "appreciate",
	"happy", "satisfied", "impressed", "outstanding", "brilliant", "superb",
	"super", "nice", "beautiful", "incredible", "fabulous", "marvelous",
	"exceptional", "splendid", "terrific", "magnificent", "delightful",
	"pleased", "enjoy", "enjoyed", "loving", "liked", "like", "recommend",
}

var negativeKeywords = []string{
	"bad", "terrible", "awful", "horrible", "worst", "hate", "poor", "useless",
	"disappointing", "disappointed", "frustrating", "frustrated", "angry", "sad",
	"unhappy", "dissatisfied", "confusing", "confused", "wrong", "error",
	"fail", "failed", "broken", "issue", "problem", "difficult", "hard",
	"annoying", "annoyed", "upset", "dislike", "hate", "hated",
}
