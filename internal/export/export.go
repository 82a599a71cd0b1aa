// Package export turns matched shot windows into video clips via ffmpeg.
package export

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/courtlab/go-shot-metrics/internal/model"
)

// Clip is one source-video time range to extract, in seconds.
type Clip struct {
	Start float64
	End   float64
}

func (c Clip) Duration() float64 {
	return c.End - c.Start
}

// ClipsFromWindows re-chunks the flat sequence-matcher output into one clip
// per window: the first shot's start time through the last shot's end time.
// Overlapping or touching clips are merged so the exported video never
// repeats footage. windowLen must match the pattern length used to produce
// the shots.
func ClipsFromWindows(shots []model.Shot, windowLen int) []Clip {
	if windowLen <= 0 || len(shots) == 0 || len(shots)%windowLen != 0 {
		return nil
	}

	clips := make([]Clip, 0, len(shots)/windowLen)
	for i := 0; i < len(shots); i += windowLen {
		window := shots[i : i+windowLen]
		clips = append(clips, Clip{
			Start: window[0].StartTime,
			End:   window[len(window)-1].EndTime,
		})
	}

	sort.Slice(clips, func(i, j int) bool { return clips[i].Start < clips[j].Start })

	merged := clips[:1]
	for _, c := range clips[1:] {
		last := &merged[len(merged)-1]
		if c.Start <= last.End {
			if c.End > last.End {
				last.End = c.End
			}
			continue
		}
		merged = append(merged, c)
	}
	return merged
}

// ConcatArgs builds the ffmpeg argument list that trims every clip from the
// input and concatenates them into a single re-encoded output file.
func ConcatArgs(input string, clips []Clip, output string) []string {
	var filters []string
	var streams []string

	for i, c := range clips {
		filters = append(filters, fmt.Sprintf(
			"[0:v]trim=start=%.3f:duration=%.3f,setpts=PTS-STARTPTS,"+
				"scale=1920:1080:force_original_aspect_ratio=decrease,"+
				"pad=1920:1080:(ow-iw)/2:(oh-ih)/2[v%d]",
			c.Start, c.Duration(), i))
		filters = append(filters, fmt.Sprintf(
			"[0:a]atrim=start=%.3f:duration=%.3f,asetpts=PTS-STARTPTS[a%d]",
			c.Start, c.Duration(), i))
		streams = append(streams, fmt.Sprintf("[v%d][a%d]", i, i))
	}
	filters = append(filters, fmt.Sprintf(
		"%sconcat=n=%d:v=1:a=1[outv][outa]", strings.Join(streams, ""), len(clips)))

	return []string{
		"-i", input,
		"-filter_complex", strings.Join(filters, ";"),
		"-map", "[outv]",
		"-map", "[outa]",
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-c:a", "aac",
		"-y",
		output,
	}
}

// Exporter shells out to ffmpeg to cut and concatenate clips.
type Exporter struct {
	FFmpegBin string // defaults to "ffmpeg" when empty
}

// Export extracts the given clips from input and writes a single
// concatenated video to output.
func (e *Exporter) Export(ctx context.Context, input string, clips []Clip, output string) error {
	if len(clips) == 0 {
		return fmt.Errorf("no clips to export")
	}
	bin := e.FFmpegBin
	if bin == "" {
		bin = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, bin, ConcatArgs(input, clips, output)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, tail(string(out), 400))
	}
	return nil
}

// tail returns at most n trailing bytes of s, for error messages.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
