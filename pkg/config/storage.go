package config

type StorageConfig struct {
	Mode      string
	UploadDir string
	AWSRegion string
	AWSBucket string
	Prefix    string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Mode:      getEnv("STORAGE_MODE", "local"),
		UploadDir: getEnv("UPLOAD_DIR", "./exports"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		AWSBucket: getEnv("AWS_BUCKET", "travelbot-exports"),
		Prefix:    getEnv("STORAGE_PREFIX", "exports"),
	}
}
