package config

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
)

// HeadCommit returns the full SHA of HEAD in the git repository containing
// dir.
func HeadCommit(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open git repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	sha := strings.ToLower(head.Hash().String())
	if !isSHA(sha) {
		return "", fmt.Errorf("unexpected HEAD hash %q", sha)
	}
	return sha, nil
}

func isSHA(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
