package models

// CommitResult describes a commit created by the workflow
type CommitResult struct {
	Hash    string `json:"hash"`
	Message string `json:"message"`
}

// ShortHash returns the display form of the commit hash (first 8 characters)
func (c *CommitResult) ShortHash() string {
	if len(c.Hash) > 8 {
		return c.Hash[:8]
	}
	return c.Hash
}
