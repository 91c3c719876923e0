// pkg/filestorage/local_filestorage.go

package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStorageInterface - хранилище файлов вложений заявок.
// Save возвращает путь относительно корня хранилища; именно он
// пишется в БД и подставляется в /uploads при отдаче.
type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	Delete(filePath string) error
}

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию хранилища: %w", err)
	}
	return &LocalFileStorage{basePath: basePath}, nil
}

// Save раскладывает файлы по датам: prefix/2026/08/29/<дата>-<uuid>.<ext>.
// Оригинальное имя не сохраняется в пути, только расширение.
func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	now := time.Now()
	ext := filepath.Ext(originalFileName)
	uniqueName := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), uuid.New().String(), ext)

	datePath := now.Format("2006/01/02")
	dirPath := filepath.Join(s.basePath, prefix, datePath)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dirPath, uniqueName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join(prefix, datePath, uniqueName)), nil
}

// Delete принимает и относительный путь из БД, и URL вида
// "/uploads/...": префикс /uploads отсекается.
func (s *LocalFileStorage) Delete(filePath string) error {
	relativePath := strings.TrimPrefix(filePath, "/uploads/")
	fullPath := filepath.Join(s.basePath, relativePath)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		// Файла уже нет - удалять нечего.
		return nil
	}
	return os.Remove(fullPath)
}
