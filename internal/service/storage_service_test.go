package service

import (
	"ap_quiz_backend/internal/config"
	"ap_quiz_backend/internal/util"
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageService_LocalSave(t *testing.T) {
	storage, dir := newTestStorage(t)
	ctx := context.Background()

	url, err := storage.Save(ctx, "notes.txt", []byte("first"), util.MimeText)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/notes.txt", url)

	// 同名文件覆盖写入
	_, err = storage.Save(ctx, "notes.txt", []byte("second"), util.MimeText)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestStorageService_LocalFailure(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	storage := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: "local", LocalPath: file}})
	_, err := storage.Save(context.Background(), "barplot.png", []byte("png"), util.MimePNG)
	require.Error(t, err)
	assert.True(t, util.IsExternal(err))
	assert.ErrorIs(t, err, util.ErrStorageUnavailable)
}

func TestNewStorageService_Providers(t *testing.T) {
	local := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: "unknown", LocalPath: t.TempDir()}})
	assert.Equal(t, util.StorageLocal, local.Provider.Name())

	minioSvc := NewStorageService(&config.Config{Storage: config.StorageConfig{
		Type:          "minio",
		MinioEndpoint: "localhost:9000",
		MinioAccessID: "key",
		MinioSecret:   "secret",
		MinioBucket:   "quiz",
	}})
	assert.Equal(t, util.StorageMinio, minioSvc.Provider.Name())
	assert.Equal(t, "http://localhost:9000/quiz/barplot.png", minioSvc.Provider.GetURL("barplot.png"))

	ossSvc := NewStorageService(&config.Config{Storage: config.StorageConfig{
		Type:         "oss",
		OSSEndpoint:  "oss-cn-hangzhou.aliyuncs.com",
		OSSAccessKey: "key",
		OSSSecretKey: "secret",
		OSSBucket:    "quiz",
	}})
	assert.Equal(t, util.StorageOSS, ossSvc.Provider.Name())
	assert.Equal(t, "https://quiz.oss-cn-hangzhou.aliyuncs.com/worksheet.txt", ossSvc.Provider.GetURL("worksheet.txt"))
}

func TestMinioStorageProvider_AbsoluteURL(t *testing.T) {
	cfg := &config.StorageConfig{MinioEndpoint: "minio.example.com:9000", MinioBucket: "quiz"}
	p, err := NewMinioStorageProvider(cfg)
	require.NoError(t, err)

	// 结果页直接把地址放进 <img src>，必须带协议和主机
	u, err := url.Parse(p.GetURL(util.ChartFilename))
	require.NoError(t, err)
	assert.True(t, u.IsAbs())
	assert.Equal(t, "minio.example.com:9000", u.Host)
	assert.Equal(t, "/quiz/"+util.ChartFilename, u.Path)

	cfg.MinioUseSSL = true
	assert.Equal(t, "https://minio.example.com:9000/quiz/worksheet.txt", p.GetURL("worksheet.txt"))
}

func TestStorageService_SanitizesFilename(t *testing.T) {
	storage, dir := newTestStorage(t)

	url, err := storage.Save(context.Background(), "../../escape.txt", []byte("x"), "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.txt", url)
	assert.FileExists(t, filepath.Join(dir, "escape.txt"))

	_, err = storage.Save(context.Background(), "", []byte("x"), "")
	assert.Error(t, err)
}
