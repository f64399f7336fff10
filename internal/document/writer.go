package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputPath 计算输出文件路径。
// outputRoot 为空时原地覆盖，否则按相对 inputRoot 的路径镜像到 outputRoot 下。
func OutputPath(inputRoot, outputRoot, path string) (string, error) {
	if outputRoot == "" {
		return path, nil
	}
	rel, err := filepath.Rel(inputRoot, path)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside input directory %s", path, inputRoot)
	}
	return filepath.Join(outputRoot, rel), nil
}

// WriteText 以 UTF-8 写入文件，必要时创建中间目录。
// 先写临时文件再重命名，失败时不会留下写了一半的目标文件。
// path 是符号链接时写入链接指向的文件，链接本身保持不变。
func WriteText(path, text string) error {
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		target, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to resolve symlink: %w", err)
		}
		path = target
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, []byte(text), perm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
