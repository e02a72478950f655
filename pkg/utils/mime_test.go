package utils

import "testing"

func TestDetectMimeType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	tests := []struct {
		name     string
		data     []byte
		fileName string
		want     string
	}{
		{"扩展名优先", []byte("<svg xmlns='http://www.w3.org/2000/svg'/>"), "art.SVG", "image/svg+xml"},
		{"魔数检测", png, "blob", "image/png"},
		{"glTF 二进制", []byte("glTF"), "model.glb", "model/gltf-binary"},
		{"空内容", nil, "", DefaultMimeType},
		{"纯文本", []byte("hello"), "", "text/plain; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMimeType(tt.data, tt.fileName); got != tt.want {
				t.Errorf("DetectMimeType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsMediaType(t *testing.T) {
	for _, m := range []string{"image/png", "video/mp4", "audio/ogg", "model/gltf-binary"} {
		if !IsMediaType(m) {
			t.Errorf("%s 应为媒体类型", m)
		}
	}
	for _, m := range []string{"application/json", "text/plain", ""} {
		if IsMediaType(m) {
			t.Errorf("%s 不应为媒体类型", m)
		}
	}
}
