package config

type StorageConfig struct {
	// Mode selects "local" or "s3" for CV document archival.
	Mode      string
	LocalPath string
	AWSRegion string
	AWSBucket string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Mode:      getEnv("STORAGE_MODE", "local"),
		LocalPath: getEnv("UPLOAD_DIR", "./uploads"),
		AWSRegion: getEnv("AWS_REGION", "eu-west-1"),
		AWSBucket: getEnv("AWS_BUCKET", "proago-cv-uploads"),
	}
}
