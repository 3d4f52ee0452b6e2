package langdetect

import (
	"testing"
)

func BenchmarkDetectContent(b *testing.B) {
	samples := map[string][]byte{
		"go":     []byte("package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"Hello\")\n}"),
		"python": []byte("def hello():\n    print(\"Hello\")\n\nif __name__ == \"__main__\":\n    hello()"),
		"json":   []byte("{\n  \"name\": \"test\",\n  \"version\": \"1.0.0\"\n}"),
		"small":  []byte("hello"),
		"empty":  nil,
	}

	for name, code := range samples {
		b.Run(name, func(b *testing.B) {
			for range b.N {
				DetectContent(code)
			}
		})
	}
}

func BenchmarkForFence(b *testing.B) {
	body := []byte("SELECT id FROM users;")

	b.Run("info", func(b *testing.B) {
		for range b.N {
			ForFence("sql", body)
		}
	})
	b.Run("sniffed", func(b *testing.B) {
		for range b.N {
			ForFence("", body)
		}
	})
}
