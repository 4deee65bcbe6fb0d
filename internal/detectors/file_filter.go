package detectors

import (
	"path/filepath"
	"strings"
)

// binaryExtensions lists file extensions that are skipped before content
// inspection. Matching is case-insensitive on the extension.
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
	".bmp": true, ".svg": true, ".webp": true,
	".pdf": true, ".zip": true, ".gz": true, ".tar": true, ".rar": true,
	".7z": true, ".jar": true, ".war": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true,
	".class": true, ".o": true, ".a": true, ".pyc": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true, ".otf": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".wav": true,
}

// sourceExtensions lists extensions the code-pattern detector inspects.
var sourceExtensions = map[string]bool{
	".go": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".py": true, ".rb": true, ".java": true, ".php": true, ".cs": true,
	".c": true, ".cpp": true, ".cc": true, ".h": true, ".hpp": true,
	".sh": true, ".bash": true, ".pl": true, ".kt": true, ".rs": true,
	".scala": true, ".swift": true, ".m": true, ".sql": true,
}

// IsBinaryPath reports whether a path should be skipped as binary/media
// content.
func IsBinaryPath(path string) bool {
	return binaryExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsSourcePath reports whether a path carries a known source-code
// extension.
func IsSourcePath(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsConfigPath reports whether a path names a Dockerfile or a compose-like
// configuration file subject to the configuration audit.
func IsConfigPath(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	if base == "dockerfile" || strings.HasPrefix(base, "dockerfile.") {
		return true
	}
	if strings.HasPrefix(base, "docker-compose") && (strings.HasSuffix(base, ".yml") || strings.HasSuffix(base, ".yaml")) {
		return true
	}
	if base == "compose.yml" || base == "compose.yaml" {
		return true
	}
	return base == ".env" || strings.HasPrefix(base, ".env.")
}
