package responder

import "testing"

func TestMatchShortcutGreetings(t *testing.T) {
	cases := []string{"hi", "Hello", "HEY", "hello there", "good morning", "  hi  "}
	for _, msg := range cases {
		if got := matchShortcut(msg); got != greetingReply {
			t.Errorf("matchShortcut(%q) = %q, want greeting reply", msg, got)
		}
	}
}

func TestMatchShortcutFarewells(t *testing.T) {
	cases := []string{"bye", "goodbye", "see you", "ok bye"}
	for _, msg := range cases {
		if got := matchShortcut(msg); got != farewellReply {
			t.Errorf("matchShortcut(%q) = %q, want farewell reply", msg, got)
		}
	}
}

func TestMatchShortcutThanksWholeMessageOnly(t *testing.T) {
	for _, msg := range []string{"thanks", "Thank you", "ty", "thanks!", "thx."} {
		if got := matchShortcut(msg); got != thanksReply {
			t.Errorf("matchShortcut(%q) = %q, want thanks reply", msg, got)
		}
	}

	// "ty" must not fire inside a longer word or sentence.
	for _, msg := range []string{"Liquidity", "what is liquidity", "thanks to inflation, prices rose"} {
		if got := matchShortcut(msg); got == thanksReply {
			t.Errorf("matchShortcut(%q) matched thanks reply", msg)
		}
	}
}

func TestMatchShortcutHowAreYou(t *testing.T) {
	for _, msg := range []string{"how are you", "How are you?", "how r u"} {
		if got := matchShortcut(msg); got != howAreYouReply {
			t.Errorf("matchShortcut(%q) = %q, want how-are-you reply", msg, got)
		}
	}
}

func TestMatchShortcutNoMatch(t *testing.T) {
	for _, msg := range []string{"what is blockchain", "explain photosynthesis", "hithere"} {
		if got := matchShortcut(msg); got != "" {
			t.Errorf("matchShortcut(%q) = %q, want empty", msg, got)
		}
	}
}
