package github

import "testing"

func TestParsePRRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		owner   string
		repo    string
		number  int
		wantErr bool
	}{
		{name: "valid", ref: "octocat/hello-world#42", owner: "octocat", repo: "hello-world", number: 42},
		{name: "dotted repo", ref: "org/repo.js#7", owner: "org", repo: "repo.js", number: 7},
		{name: "missing number", ref: "octocat/hello-world", wantErr: true},
		{name: "missing repo", ref: "octocat#42", wantErr: true},
		{name: "empty", ref: "", wantErr: true},
		{name: "non-numeric", ref: "a/b#abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, number, err := ParsePRRef(tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePRRef(%q) expected error, got %s/%s#%d", tt.ref, owner, repo, number)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePRRef(%q) error: %v", tt.ref, err)
			}
			if owner != tt.owner || repo != tt.repo || number != tt.number {
				t.Errorf("ParsePRRef(%q) = %s/%s#%d, want %s/%s#%d",
					tt.ref, owner, repo, number, tt.owner, tt.repo, tt.number)
			}
		})
	}
}
