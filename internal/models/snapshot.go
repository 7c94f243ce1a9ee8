package models

// RepoSnapshot is a read-only view of the repository state
type RepoSnapshot struct {
	CurrentBranch  string   `json:"current_branch"`
	IsDetached     bool     `json:"is_detached"` // True if HEAD is not on a branch
	StagedFiles    []string `json:"staged_files"`
	ModifiedFiles  []string `json:"modified_files"`
	UntrackedFiles []string `json:"untracked_files"`
	Ahead          int      `json:"ahead"`
	Behind         int      `json:"behind"`
}

// HasStaged returns true if any file is staged for commit
func (s *RepoSnapshot) HasStaged() bool {
	return len(s.StagedFiles) > 0
}

// IsClean returns true if there is nothing staged, modified or untracked
func (s *RepoSnapshot) IsClean() bool {
	return len(s.StagedFiles) == 0 && len(s.ModifiedFiles) == 0 && len(s.UntrackedFiles) == 0
}
