package toolchain

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var crateLine = regexp.MustCompile(`^\s*(Compiling|Checking|Downloaded|Installing)\s+\S+`)

// progressRenderer turns cargo's line-oriented chatter into a single live
// progress line when the output is a terminal, or relays it verbatim when it
// is not (pipes, CI logs).
type progressRenderer struct {
	out io.Writer
	bar *pb.ProgressBar
}

func newProgressRenderer(out io.Writer, label string) *progressRenderer {
	r := &progressRenderer{out: out}

	f, ok := out.(*os.File)
	if !ok || (!isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())) {
		return r
	}

	r.bar = pb.
		New(0).
		SetTemplate(
			pb.ProgressBarTemplate(
				color.New(color.FgHiBlack).Sprint(
					`   └ {{string . "prefix"}} {{counters . }} crates`,
				),
			),
		).
		SetRefreshRate(time.Second / 30).
		SetMaxWidth(100).
		SetWriter(f).
		Start()
	r.bar.Set("prefix", label)
	return r
}

// Consume reads the command output to EOF, observing one line at a time.
func (r *progressRenderer) Consume(pipe io.Reader) {
	scanner := bufio.NewScanner(pipe)
	for scanner.Scan() {
		r.observe(scanner.Text())
	}
}

func (r *progressRenderer) observe(line string) {
	if r.bar == nil {
		fmt.Fprintln(r.out, line)
		return
	}
	if crateLine.MatchString(line) {
		r.bar.Increment()
	}
}

func (r *progressRenderer) Finish() {
	if r.bar != nil {
		r.bar.Finish()
	}
}
