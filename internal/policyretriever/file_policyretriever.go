package policyretriever

import (
	"fmt"
	"os"
)

// filePolicyRetriever reads the policy from the local filesystem on every call so an edited
// file is picked up by the next evaluation.
type filePolicyRetriever struct {
	path string
}

func (p *filePolicyRetriever) GetPolicy() (string, error) {
	fileInfo, err := os.Stat(p.path)
	if err != nil {
		return "", fmt.Errorf("policy not found: %w", err)
	}

	if fileInfo.IsDir() {
		return "", fmt.Errorf("policy path is a directory, not a file")
	}

	content, err := os.ReadFile(p.path)
	if err != nil {
		return "", fmt.Errorf("failed to read policy: %w", err)
	}

	return string(content), nil
}

// NewFilePolicyRetriever creates a PolicyRetriever that reads the policy stored at path.
func NewFilePolicyRetriever(path string) PolicyRetriever {
	return &filePolicyRetriever{path: path}
}
