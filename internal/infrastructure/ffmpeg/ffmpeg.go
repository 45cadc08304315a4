package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	appmedia "photoframe/internal/application/media"
	"photoframe/internal/domain/media"
)

// ErrUnsupportedInput is returned by Load for anything other than an
// http(s) URL or a known blob: URL.
var ErrUnsupportedInput = errors.New("unsupported probe input")

// protocolWhitelist keeps ffprobe/ffmpeg from following nested references
// into other protocols.
const protocolWhitelist = "file,http,https,tcp,tls"

// DefaultPlayableCodecs are the video codecs browsers decode natively.
var DefaultPlayableCodecs = []string{"h264", "vp8", "vp9", "av1"}

// Locator maps local URLs (blob:...) to files on disk.
type Locator interface {
	PathForURL(url string) (string, bool)
}

// Converter wraps ffmpeg/ffprobe calls. It acts as the playback decoder
// for the prober and as the transcoder for Transcode-and-Retry.
type Converter struct {
	FFmpegBin  string
	FFprobeBin string
	WorkDir    string

	playable map[string]bool
	locator  Locator
}

// NewConverter creates an ffmpeg adapter. Empty binaries default to the
// names on PATH and an empty codec list selects DefaultPlayableCodecs.
func NewConverter(ffmpegBin, ffprobeBin, workDir string, playableCodecs []string, locator Locator) *Converter {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	if workDir == "" {
		workDir = os.TempDir()
	}
	if len(playableCodecs) == 0 {
		playableCodecs = DefaultPlayableCodecs
	}
	playable := make(map[string]bool, len(playableCodecs))
	for _, codec := range playableCodecs {
		playable[strings.ToLower(strings.TrimSpace(codec))] = true
	}
	return &Converter{
		FFmpegBin:  ffmpegBin,
		FFprobeBin: ffprobeBin,
		WorkDir:    workDir,
		playable:   playable,
		locator:    locator,
	}
}

// Load succeeds once ffprobe can read the first video stream of rawURL and
// its codec is one the client can decode. Only http(s) and blob: URLs are
// probed; anything else is rejected before ffprobe runs.
func (c *Converter) Load(ctx context.Context, rawURL string) error {
	input, err := c.probeInput(rawURL)
	if err != nil {
		return err
	}
	codec, err := probeVideoCodec(ctx, c.FFprobeBin, input)
	if err != nil {
		return err
	}
	if codec == "" {
		return fmt.Errorf("no video stream in %s", rawURL)
	}
	if !c.playable[codec] {
		return fmt.Errorf("codec %s not playable", codec)
	}
	return nil
}

// Transcode converts raw video bytes into a faststart MP4 (H.264/AAC).
func (c *Converter) Transcode(ctx context.Context, title string, data []byte) (appmedia.Blob, error) {
	if len(data) == 0 {
		return appmedia.Blob{}, fmt.Errorf("empty input")
	}
	if err := os.MkdirAll(c.WorkDir, 0o755); err != nil {
		return appmedia.Blob{}, err
	}
	dir, err := os.MkdirTemp(c.WorkDir, "transcode-*")
	if err != nil {
		return appmedia.Blob{}, err
	}
	defer os.RemoveAll(dir)

	inputPath := filepath.Join(dir, "input"+inputExt(title))
	if err := os.WriteFile(inputPath, data, 0o600); err != nil {
		return appmedia.Blob{}, err
	}
	outputPath := filepath.Join(dir, "output.mp4")

	if err := c.ConvertMP4(ctx, inputPath, outputPath); err != nil {
		return appmedia.Blob{}, err
	}

	out, err := os.ReadFile(outputPath)
	if err != nil {
		return appmedia.Blob{}, err
	}
	return appmedia.Blob{Data: out, ContentType: "video/mp4"}, nil
}

// ConvertMP4 converts media into seekable MP4 output.
func (c *Converter) ConvertMP4(ctx context.Context, inputPath, outputPath string) error {
	codec, _ := probeVideoCodec(ctx, c.FFprobeBin, inputPath)

	tmpPath := outputPath + ".tmp.mp4"
	_ = os.Remove(tmpPath)

	if err := run(ctx, c.FFmpegBin, mp4Args(inputPath, tmpPath, codec)...); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	_ = os.Remove(outputPath)
	return os.Rename(tmpPath, outputPath)
}

func (c *Converter) probeInput(rawURL string) (string, error) {
	if strings.HasPrefix(rawURL, media.BlobScheme) {
		if c.locator != nil {
			if path, ok := c.locator.PathForURL(rawURL); ok {
				return path, nil
			}
		}
		return "", fmt.Errorf("%w: unknown blob %q", ErrUnsupportedInput, rawURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedInput, rawURL)
	}
	return rawURL, nil
}

func mp4Args(inputPath, outputPath, sourceCodec string) []string {
	args := []string{"-y", "-protocol_whitelist", protocolWhitelist, "-i", inputPath, "-sn", "-map", "0:v:0?", "-map", "0:a:0?"}
	if sourceCodec != "h264" {
		args = append(args, "-c:v", "libx264", "-preset", "veryfast", "-crf", "20", "-pix_fmt", "yuv420p")
	} else {
		args = append(args, "-c:v", "copy")
	}
	return append(args,
		"-c:a", "aac",
		"-ac", "2",
		"-b:a", "192k",
		"-ar", "48000",
		"-f", "mp4",
		"-movflags", "+faststart",
		outputPath,
	)
}

func inputExt(title string) string {
	ext := strings.ToLower(filepath.Ext(title))
	if media.IsSupportedVideoExt(ext) {
		return ext
	}
	return ".bin"
}

func probeVideoCodec(ctx context.Context, ffprobeBin, input string) (string, error) {
	args := []string{
		"-v", "error",
		"-protocol_whitelist", protocolWhitelist,
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name",
		"-of", "default=nokey=1:noprint_wrappers=1",
		input,
	}
	cmd := exec.CommandContext(ctx, ffprobeBin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%s failed: %w: %s", ffprobeBin, err, strings.TrimSpace(stderr.String()))
	}
	return parseCodec(out), nil
}

func parseCodec(out []byte) string {
	for _, line := range strings.Split(string(out), "\n") {
		if codec := strings.ToLower(strings.TrimSpace(line)); codec != "" {
			return codec
		}
	}
	return ""
}

func run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
