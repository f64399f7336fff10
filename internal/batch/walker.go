package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WalkOptions 目录遍历选项
type WalkOptions struct {
	// Extensions 需要处理的扩展名（带点号，不区分大小写）
	Extensions []string
	// SkipDirs 不进入的目录，通常是位于输入目录内的输出目录
	SkipDirs []string
	// FollowSymlinks 跟随指向文件和目录的符号链接，已访问过的目录不会重复进入
	FollowSymlinks bool
}

// Walk 递归查找 root 下所有匹配扩展名的文件，结果按路径排序。
// 以点号开头的隐藏目录（如 .git）会被跳过。
func Walk(ctx context.Context, root string, opts WalkOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	w := &walker{
		opts:    opts,
		exts:    make(map[string]bool, len(opts.Extensions)),
		skip:    make(map[string]bool, len(opts.SkipDirs)),
		visited: make(map[string]bool),
	}
	for _, ext := range opts.Extensions {
		w.exts[strings.ToLower(ext)] = true
	}
	for _, dir := range opts.SkipDirs {
		if abs, err := filepath.Abs(dir); err == nil {
			w.skip[abs] = true
		}
	}

	if err := w.walk(ctx, root); err != nil {
		return nil, err
	}
	sort.Strings(w.files)
	return w.files, nil
}

type walker struct {
	opts    WalkOptions
	exts    map[string]bool
	skip    map[string]bool
	visited map[string]bool
	files   []string
}

func (w *walker) walk(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if w.skip[abs] {
		return nil
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		if w.visited[real] {
			return nil
		}
		w.visited[real] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()

		if entry.Type()&os.ModeSymlink != 0 {
			if !w.opts.FollowSymlinks {
				continue
			}
			target, err := os.Stat(path)
			if err != nil {
				// 悬空链接
				continue
			}
			isDir = target.IsDir()
		}

		if isDir {
			if strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if err := w.walk(ctx, path); err != nil {
				return err
			}
			continue
		}

		if w.exts[strings.ToLower(filepath.Ext(entry.Name()))] {
			w.files = append(w.files, path)
		}
	}
	return nil
}
