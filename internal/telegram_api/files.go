package telegram_api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// ErrFileNotFound - Telegram не знает такой file_id или файл больше недоступен.
var ErrFileNotFound = errors.New("файл не найден в Telegram")

// RemoteFile - открытый поток файла с серверов Telegram. Body закрывает вызывающий.
type RemoteFile struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
	Name        string
}

// FileURL возвращает прямую ссылку на файл. Ссылка содержит токен бота
// и не должна попадать в браузер.
func (bc *BotClient) FileURL(fileID string) (string, string, error) {
	if bc == nil || bc.api == nil {
		return "", "", ErrBotUnavailable
	}
	file, err := bc.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
			return "", "", fmt.Errorf("%w: %s", ErrFileNotFound, apiErr.Message)
		}
		return "", "", fmt.Errorf("ошибка getFile: %w", err)
	}
	if file.FilePath == "" {
		return "", "", ErrFileNotFound
	}
	return fmt.Sprintf(bc.fileEndpoint, bc.api.Token, file.FilePath), file.FilePath, nil
}

// OpenFile скачивает файл по file_id и отдаёт поток для проксирования.
func (bc *BotClient) OpenFile(ctx context.Context, fileID string) (*RemoteFile, error) {
	fileURL, filePath, err := bc.FileURL(fileID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса файла: %w", err)
	}
	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки файла: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("ошибка загрузки файла: HTTP %d", resp.StatusCode)
	}

	contentType := getContentType(path.Ext(filePath))
	if contentType == "application/octet-stream" {
		if header := resp.Header.Get("Content-Type"); header != "" {
			contentType = header
		}
	}

	return &RemoteFile{
		Body:        resp.Body,
		ContentType: contentType,
		Size:        resp.ContentLength,
		Name:        path.Base(filePath),
	}, nil
}

// getContentType возвращает MIME-тип на основе расширения файла.
// Telegram отдаёт файлы как application/octet-stream.
func getContentType(ext string) string {
	ext = strings.ToLower(ext)
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
