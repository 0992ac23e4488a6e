package api

const (
	// DefaultFilePermissions for temp directory creation
	DefaultFilePermissions = 0755

	// MaxMergeFiles caps the number of uploads accepted by one merge request
	MaxMergeFiles = 100

	// maxErrorLength truncates library messages returned to clients
	maxErrorLength = 200
)
