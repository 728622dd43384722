package engine

// openingBookData is the embedded opening tree: outer keys are UCI move
// strings from the start position; each value's replies are UCI move
// strings from the position reached after that move, and so on. BuildBook
// walks this structure once at startup.
var openingBookData = map[string]*bookNode{
	"e2e4": {replies: map[string]*bookNode{
		"e7e5": {replies: map[string]*bookNode{
			"g1f3": {replies: map[string]*bookNode{
				"b8c6": {replies: map[string]*bookNode{
					"f1b5": {},
					"f1c4": {},
				}},
			}},
		}},
		"c7c5": {replies: map[string]*bookNode{
			"g1f3": {replies: map[string]*bookNode{
				"d7d6": {},
				"b8c6": {},
			}},
		}},
		"e7e6": {replies: map[string]*bookNode{
			"d2d4": {replies: map[string]*bookNode{
				"d7d5": {},
			}},
		}},
		"c7c6": {replies: map[string]*bookNode{
			"d2d4": {replies: map[string]*bookNode{
				"d7d5": {},
			}},
		}},
	}},
	"d2d4": {replies: map[string]*bookNode{
		"d7d5": {replies: map[string]*bookNode{
			"c2c4": {replies: map[string]*bookNode{
				"e7e6": {},
				"c7c6": {},
			}},
		}},
		"g8f6": {replies: map[string]*bookNode{
			"c2c4": {replies: map[string]*bookNode{
				"g7g6": {},
				"e7e6": {},
			}},
		}},
	}},
	"c2c4": {replies: map[string]*bookNode{
		"e7e5": {},
		"g8f6": {},
	}},
	"g1f3": {replies: map[string]*bookNode{
		"d7d5": {},
		"g8f6": {},
	}},
}
