package supabase

import (
	"fmt"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// StorageClient removes stored media for deleted projects. Media written by
// other clients lives under users/{user_id}/projects/{project_id}/.
type StorageClient struct {
	client *storage.Client
	bucket string
}

func NewStorageClient(supabaseURL, publishableKey, bucket string) (*StorageClient, error) {
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", publishableKey, nil)

	return &StorageClient{
		client: client,
		bucket: bucket,
	}, nil
}

// DeleteProjectFiles removes every stored object under the project's prefix.
func (s *StorageClient) DeleteProjectFiles(userID, projectID uuid.UUID) error {
	prefix := fmt.Sprintf("users/%s/projects/%s/", userID.String(), projectID.String())

	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	if len(files) == 0 {
		return nil
	}

	filePaths := make([]string, len(files))
	for i, file := range files {
		filePaths[i] = file.Name
	}
	if _, err := s.client.RemoveFile(s.bucket, filePaths); err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	return nil
}
