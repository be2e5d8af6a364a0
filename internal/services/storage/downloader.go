package storage

import "context"

// Download fetches a stored object by key.
func (s *StorageService) Download(ctx context.Context, key string) ([]byte, error) {
	data, err := s.sbClient.DownloadFile(s.bucket, key)
	if err != nil {
		return nil, err
	}
	return data, nil
}
