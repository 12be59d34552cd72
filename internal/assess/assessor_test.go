package assess

import "testing"

func TestAssess(t *testing.T) {
	a := NewAssessor()

	tests := []struct {
		name        string
		kind        ActionKind
		result      ActionResult
		expectation string
		wantSuccess bool
		wantScore   float32
	}{
		{"failed-action", ActionRunCommand, ActionResult{Status: "error", Err: "exit 1"}, "", false, -0.5},
		{"empty-read", ActionReadFile, ActionResult{Status: "success", Output: ""}, "", true, 0.1},
		{"good-read", ActionReadFile, ActionResult{Status: "success", Output: "contents"}, "", true, 0.8},
		{"write", ActionWriteFile, ActionResult{Status: "success"}, "", true, 1.0},
		{"command-matched", ActionRunCommand, ActionResult{Status: "success", Output: "All Tests PASSED"}, "tests passed", true, 1.0},
		{"command-unmatched", ActionRunCommand, ActionResult{Status: "success", Output: "done"}, "tests passed", true, 0.7},
		{"command-no-expectation", ActionRunCommand, ActionResult{Status: "success", Output: "done"}, "", true, 0.7},
		{"respond-default", ActionRespond, ActionResult{Status: "success", Output: "hello"}, "", true, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Assess(tt.kind, tt.result, tt.expectation)
			if got.Success != tt.wantSuccess {
				t.Errorf("success: got %v, want %v", got.Success, tt.wantSuccess)
			}
			if got.Score != tt.wantScore {
				t.Errorf("score: got %v, want %v", got.Score, tt.wantScore)
			}
			if got.Score < -1 || got.Score > 1 {
				t.Errorf("score out of [-1,1]: %v", got.Score)
			}
		})
	}
}
