package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"github.com/nerdneilsfield/go-unicode-math/internal/batch"
)

// Prompter 交互式提问
type Prompter interface {
	// Input 读取一行输入，输入为空时返回 def
	Input(prompt, def string) (string, error)
	Confirm(prompt string) (bool, error)
}

// prompter 当前使用的提问实现，测试中可替换
var prompter Prompter = ptermPrompter{}

// interactive 判断能否交互式提问，测试中可替换
var interactive = isTerminal

// isTerminal 输入来自终端时才提问，管道或重定向时不提问
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type ptermPrompter struct{}

func (ptermPrompter) Input(prompt, def string) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	answer, err := pterm.DefaultInteractiveTextInput.Show(prompt)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (ptermPrompter) Confirm(prompt string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(prompt)
}

// progressBar 批量转换进度条，首次回调时才知道文件总数
type progressBar struct {
	bar *pterm.ProgressbarPrinter
}

// update 作为 batch.Request.Progress 使用，只在收集结果的 goroutine 中调用
func (p *progressBar) update(done, total int, res batch.FileResult) {
	if p.bar == nil {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle("转换进度").
			WithRemoveWhenDone(false).
			Start()
		if err != nil {
			return
		}
		p.bar = bar
	}
	p.bar.UpdateTitle(fmt.Sprintf("%s (%d/%d)", filepath.Base(res.Source), done, total))
	p.bar.Increment()
}

func (p *progressBar) stop() {
	if p == nil || p.bar == nil {
		return
	}
	_, _ = p.bar.Stop()
}
