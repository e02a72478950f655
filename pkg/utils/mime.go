// Package utils provides small helpers shared by the upload paths.
package utils

import (
	"net/http"
	"path/filepath"
	"strings"
)

// DefaultMimeType 无法识别时的类型
const DefaultMimeType = "application/octet-stream"

// mediaExtensions 常见 NFT 媒体的扩展名映射
var mediaExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".glb":  "model/gltf-binary",
	".gltf": "model/gltf+json",
	".json": "application/json",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".html": "text/html",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
}

// DetectMimeType 检测文件的 MIME 类型
//
// 扩展名已知时以扩展名为准（SVG、glTF 等文本格式无法靠内容区分），
// 否则使用 http.DetectContentType 的魔数检测。
func DetectMimeType(data []byte, fileName string) string {
	if t, ok := mediaExtensions[GetFileExtension(fileName)]; ok {
		return t
	}
	if len(data) == 0 {
		return DefaultMimeType
	}
	return http.DetectContentType(data)
}

// GetFileExtension 从文件名获取小写扩展名
func GetFileExtension(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}

// IsMediaType 是否为图片、音视频或 3D 模型
func IsMediaType(mimeType string) bool {
	for _, prefix := range []string{"image/", "video/", "audio/", "model/"} {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}
