// Package sequence plays a directory of still images back as if they were
// frames of a movie, addressable by frame index, elapsed time, or percent of
// duration.
//
// Decoded buffers and the displayed texture have different lifetimes: every
// frame keeps its decoded buffer for the whole session, while a single
// texture slot is re-uploaded whenever the current frame changes.
package sequence

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/user/imageseq/pkg/pixel"
	"github.com/user/imageseq/pkg/ports"
)

// defaultFrameRate is the frame rate used for time addressing until
// SetFrameRate is called.
const defaultFrameRate = 30.0

// loadYield is how long the background worker sleeps between frames.
const loadYield = 15 * time.Millisecond

// frameEntry is the cache slot for one frame. The buffer is set once on the
// first successful decode and kept until Unload; a non-nil err marks a frame
// that gets no further decode attempts this session.
type frameEntry struct {
	path string
	buf  pixel.Buffer
	err  error
}

// Sequence is an ordered collection of still-image frames with a current
// frame cursor and a single shared display texture.
//
// All methods must be called from the execution context that owns display
// resources. While a background load is running (LoadFolder with threaded
// loading enabled) only Update, CancelLoad, Unload, IsLoading, IsLoaded and
// PercentLoaded may be called; configuration setters are reported and
// ignored, everything else waits for IsLoaded.
type Sequence struct {
	decoder  ports.ImageDecoder
	textures ports.TextureUploader
	fs       ports.FileSystem
	log      ports.Logger

	kind pixel.Kind

	entries     []frameEntry
	current     int
	lastDecoded int
	texture     ports.Texture

	width, height float64
	frameRate     float64
	extension     string
	maxFrames     int
	useThread     bool
	loaded        bool

	minFilter ports.TextureFilter
	magFilter ports.TextureFilter

	folder  string
	loader  *loader
	loadErr error

	// progress/total back PercentLoaded while the worker decodes; they are
	// the only entry-list state the caller reads mid-load.
	progress atomic.Int64
	total    atomic.Int64

	yield time.Duration
}

// New creates a sequence that decodes into buffers of the given kind. The
// kind is fixed for the lifetime of the sequence; unrecognized kinds are
// rejected here rather than at decode time.
func New(kind pixel.Kind, decoder ports.ImageDecoder, textures ports.TextureUploader, fs ports.FileSystem, log ports.Logger) (*Sequence, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", pixel.ErrUnknownKind, int(kind))
	}
	return &Sequence{
		decoder:     decoder,
		textures:    textures,
		fs:          fs,
		log:         log.WithComponent("sequence"),
		kind:        kind,
		lastDecoded: -1,
		frameRate:   defaultFrameRate,
		minFilter:   ports.FilterLinear,
		magFilter:   ports.FilterLinear,
		yield:       loadYield,
	}, nil
}

// loadStarted reports whether a load has begun, either completed or still
// running on the worker. Configuration is frozen from that point: the worker
// reads the load options, so a late setter is reported and ignored.
func (s *Sequence) loadStarted() bool {
	return s.loaded || s.loader != nil
}

// SetExtension sets the extension filter for folder loads, like "png" or
// "jpg". Must be set before load.
func (s *Sequence) SetExtension(ext string) {
	if s.loadStarted() {
		s.log.Error("Configuration ignored: %s", ErrUsageOrder)
		return
	}
	s.extension = ext
}

// SetMaxFrames limits the number of frames discovered by a folder load.
// Zero or negative means no limit. Must be set before load.
func (s *Sequence) SetMaxFrames(maxFrames int) {
	if s.loadStarted() {
		s.log.Error("Configuration ignored: %s", ErrUsageOrder)
		return
	}
	if maxFrames < 0 {
		maxFrames = 0
	}
	s.maxFrames = maxFrames
}

// EnableThreadedLoad makes LoadFolder run on a background worker. Must be
// set before load.
func (s *Sequence) EnableThreadedLoad(enable bool) {
	if s.loadStarted() {
		s.log.Error("Configuration ignored: %s", ErrUsageOrder)
		return
	}
	s.useThread = enable
}

// SetFrameRate sets the frame rate used for time addressing. Default is 30.
func (s *Sequence) SetFrameRate(rate float64) {
	s.frameRate = rate
}

// SetMinMagFilter sets the texture sampling filters.
func (s *Sequence) SetMinMagFilter(min, mag ports.TextureFilter) {
	s.minFilter = min
	s.magFilter = mag
	if s.texture != nil {
		s.texture.SetFilter(min, mag)
	}
}

// LoadRange loads a sequence with explicit numeric naming, such as
//
//	path/to/images/frame8.png  ... LoadRange("path/to/images/frame", "png", 8, 10, 0)
//	path/to/images/frame008.png ... LoadRange("path/to/images/frame", "png", 8, 10, 3)
//
// digits == 0 means unpadded. The whole range is indexed immediately but
// only frame 0 is decoded; the rest decode on demand or via
// PreloadAllFrames.
func (s *Sequence) LoadRange(prefix, ext string, start, end, digits int) error {
	s.Unload()

	paths, err := resolveRange(prefix, ext, start, end, digits)
	if err != nil {
		s.log.Error("Load failed: %s", err)
		s.loadErr = err
		return err
	}
	s.setEntries(paths)

	if err := s.completeLoading(); err != nil {
		s.loadErr = err
		return err
	}
	return nil
}

// LoadFolder loads every matching image in folder, in the deterministic
// listing order. With threaded loading enabled it returns immediately and
// the caller drives completion by calling Update once per tick.
func (s *Sequence) LoadFolder(folder string) error {
	s.Unload()
	s.folder = folder

	s.log.Debug("Loading sequence from %s", folder)

	if s.useThread {
		s.loader = newLoader()
		go s.loader.run(s)
		s.log.Debug("Background load started")
		return nil
	}

	if err := s.resolveFolder(); err != nil {
		s.log.Error("Load failed: %s", err)
		s.loadErr = err
		return err
	}
	if err := s.completeLoading(); err != nil {
		s.loadErr = err
		return err
	}
	return nil
}

// Update polls a background load for completion. Call it once per tick of
// the owning loop. When the worker has finished, the finalize step runs here
// exactly once: texture upload is only safe on the caller's context, never
// on the worker.
func (s *Sequence) Update() {
	l := s.loader
	if l == nil || !l.finished() {
		return
	}
	s.loader = nil

	if err := l.loadErr(); err != nil {
		s.log.Error("Load failed: %s", err)
		s.loadErr = err
		return
	}

	if err := s.completeLoading(); err != nil {
		s.loadErr = err
		return
	}
	s.log.Debug("Background load finished")
}

// CancelLoad stops an active background load and blocks until the worker
// has exited. The sequence simply never becomes loaded; cancellation is not
// an error. Safe to call multiple times.
func (s *Sequence) CancelLoad() {
	if s.loader == nil {
		return
	}
	s.loader.cancel()
	s.loader = nil
	s.log.Debug("Background load cancelled")
}

// Unload cancels any active background load, releases every decoded buffer
// and the texture, and resets the sequence to its initial state. Always safe
// to call.
func (s *Sequence) Unload() {
	s.CancelLoad()

	if s.texture != nil {
		s.texture.Release()
		s.texture = nil
	}
	s.entries = nil
	s.folder = ""
	s.loadErr = nil
	s.loaded = false
	s.width = 0
	s.height = 0
	s.current = 0
	s.lastDecoded = -1
	s.progress.Store(0)
	s.total.Store(0)
}

// PreloadAllFrames immediately decodes every frame in the sequence. Memory
// intensive but gives the fastest scrubbing. Individual decode failures are
// recorded and skipped, not fatal.
func (s *Sequence) PreloadAllFrames() {
	if len(s.entries) == 0 {
		s.log.Error("Preload called on an empty sequence")
		return
	}
	s.preloadFrames(s.loader)
}

// resolveFolder fills the entry list from the folder recorded by
// LoadFolder. Runs on the worker for threaded loads.
func (s *Sequence) resolveFolder() error {
	paths, err := resolveFolder(s.fs, s.folder, s.extension, s.maxFrames)
	if err != nil {
		return err
	}
	s.setEntries(paths)
	return nil
}

func (s *Sequence) setEntries(paths []string) {
	entries := make([]frameEntry, len(paths))
	for i, p := range paths {
		entries[i] = frameEntry{path: p}
	}
	s.entries = entries
	s.total.Store(int64(len(entries)))
}

// completeLoading finalizes a resolved sequence: marks it loaded, decodes
// frame 0 and records the sequence dimensions from it. Caller context only.
func (s *Sequence) completeLoading() error {
	if len(s.entries) == 0 {
		err := fmt.Errorf("%w: cannot finalize an empty sequence", ErrIndexOutOfRange)
		s.log.Error("Load failed: %s", err)
		return err
	}

	s.loaded = true
	s.lastDecoded = -1
	s.loadFrame(0)

	if first := s.entries[0].buf; first != nil && first.IsAllocated() {
		s.width = float64(first.Width())
		s.height = float64(first.Height())
	}

	s.log.Info("Loaded %d frames", len(s.entries))
	return nil
}

// preloadFrames decodes every frame in index order. With a loader attached
// it checks for cancellation before each frame and briefly yields the CPU
// between frames.
func (s *Sequence) preloadFrames(l *loader) {
	for i := range s.entries {
		if l != nil {
			if l.cancelRequested() {
				return
			}
			time.Sleep(s.yield)
		}
		s.progress.Store(int64(i))
		s.decodeFrame(i)
	}
}

// decodeFrame decodes entry i into its buffer. At most one decode attempt
// per frame per session: an allocated buffer and a failed entry both return
// immediately. Never touches the texture, so it is safe on the worker.
func (s *Sequence) decodeFrame(i int) {
	e := &s.entries[i]
	if e.err != nil || (e.buf != nil && e.buf.IsAllocated()) {
		return
	}

	buf, err := s.decoder.Decode(e.path, s.kind)
	if err != nil {
		e.err = fmt.Errorf("%w: %s: %v", ErrDecodeFailed, e.path, err)
		s.log.Error("Frame failed to decode: %s", e.path)
		return
	}
	e.buf = buf
}

// loadFrame decodes frame index if needed and re-uploads the shared texture
// from it. On a failed frame the previously displayed texture is left
// untouched. Caller context only.
func (s *Sequence) loadFrame(index int) {
	if s.lastDecoded == index {
		return
	}
	if index < 0 || index >= len(s.entries) {
		s.log.Error("Frame index out of bounds: %d", index)
		return
	}

	s.decodeFrame(index)
	if s.entries[index].err != nil {
		return
	}

	tex, err := s.textures.Upload(s.entries[index].buf, s.texture)
	if err != nil {
		s.log.Error("Load failed: %s", err)
		return
	}
	tex.SetFilter(s.minFilter, s.magFilter)
	s.texture = tex
	s.lastDecoded = index
}

// LoadFrame decodes (caches) a frame ahead of use to avoid a stutter when
// it is first displayed.
func (s *Sequence) LoadFrame(index int) {
	s.loadFrame(index)
}

// SetFrame sets the current frame cursor, wrapping index modulo the frame
// count, and decodes the frame on demand. Reported and ignored when the
// sequence is not loaded or index is negative.
func (s *Sequence) SetFrame(index int) {
	if !s.loaded {
		s.log.Error("Sequence is not loaded")
		return
	}
	if index < 0 {
		s.log.Error("Frame index out of bounds: %d", index)
		return
	}

	index %= len(s.entries)
	s.loadFrame(index)
	s.current = index
}

// SetFrameForTime sets the current frame for an elapsed time in seconds,
// according to the configured frame rate.
func (s *Sequence) SetFrameForTime(t float64) {
	if len(s.entries) == 0 {
		s.SetFrame(0)
		return
	}
	totalTime := float64(len(s.entries)) / s.frameRate
	s.SetFrameAtPercent(t / totalTime)
}

// SetFrameAtPercent sets the current frame for a percent of the duration.
func (s *Sequence) SetFrameAtPercent(percent float64) {
	s.SetFrame(s.FrameIndexAtPercent(percent))
}

// FrameIndexAtPercent maps a percent of duration to a frame index. Values
// outside [0,1] wrap around by dropping the integer part, for negative
// values as well, so -0.25 addresses the same frame as 0.75.
func (s *Sequence) FrameIndexAtPercent(percent float64) int {
	n := len(s.entries)
	if n == 0 {
		return 0
	}
	if percent < 0.0 || percent > 1.0 {
		percent -= math.Floor(percent)
	}

	index := int(percent * float64(n))
	if index > n-1 {
		index = n - 1
	}
	return index
}

// PercentAtFrameIndex linearly maps a frame index to a percent of duration,
// clamped to [0,1].
func (s *Sequence) PercentAtFrameIndex(index int) float64 {
	n := len(s.entries)
	if n <= 1 {
		return 0
	}
	p := float64(index) / float64(n-1)
	return math.Min(1.0, math.Max(0.0, p))
}

// Texture returns the shared display texture, nil before the first
// successful decode.
func (s *Sequence) Texture() ports.Texture {
	return s.texture
}

// TextureForFrame sets the cursor to index and returns the texture.
func (s *Sequence) TextureForFrame(index int) ports.Texture {
	s.SetFrame(index)
	return s.texture
}

// TextureForTime sets the cursor for a time and returns the texture.
func (s *Sequence) TextureForTime(t float64) ports.Texture {
	s.SetFrameForTime(t)
	return s.texture
}

// TextureForPercent sets the cursor for a percent and returns the texture.
func (s *Sequence) TextureForPercent(percent float64) ports.Texture {
	s.SetFrameAtPercent(percent)
	return s.texture
}

// pixelsAtCursor returns the buffer of the last successfully decoded frame.
func (s *Sequence) pixelsAtCursor() pixel.Buffer {
	if s.lastDecoded < 0 || s.lastDecoded >= len(s.entries) {
		return nil
	}
	return s.entries[s.lastDecoded].buf
}

// PixelsForFrame sets the cursor to index and returns the decoded buffer of
// the last successfully decoded frame.
func (s *Sequence) PixelsForFrame(index int) pixel.Buffer {
	s.SetFrame(index)
	return s.pixelsAtCursor()
}

// PixelsForTime sets the cursor for a time and returns the decoded buffer.
func (s *Sequence) PixelsForTime(t float64) pixel.Buffer {
	s.SetFrameForTime(t)
	return s.pixelsAtCursor()
}

// PixelsForPercent sets the cursor for a percent and returns the decoded
// buffer.
func (s *Sequence) PixelsForPercent(percent float64) pixel.Buffer {
	s.SetFrameAtPercent(percent)
	return s.pixelsAtCursor()
}

// FilePath returns the source path of a frame, or "" when index is out of
// range.
func (s *Sequence) FilePath(index int) string {
	if index >= 0 && index < len(s.entries) {
		return s.entries[index].path
	}
	s.log.Error("Frame index out of bounds: %d", index)
	return ""
}

// FailedFrames returns the indices that failed to decode this session.
func (s *Sequence) FailedFrames() []int {
	var failed []int
	for i := range s.entries {
		if s.entries[i].err != nil {
			failed = append(failed, i)
		}
	}
	return failed
}

// FrameError returns the decode error recorded for a frame, nil for frames
// that decoded successfully or have not been attempted yet.
func (s *Sequence) FrameError(index int) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return s.entries[index].err
}

// CurrentFrame returns the current frame cursor.
func (s *Sequence) CurrentFrame() int {
	return s.current
}

// TotalFrames returns how many frames are in the sequence.
func (s *Sequence) TotalFrames() int {
	return len(s.entries)
}

// LengthInSeconds returns the sequence duration based on the frame rate.
func (s *Sequence) LengthInSeconds() float64 {
	return float64(len(s.entries)) / s.frameRate
}

// Width returns the sequence width, 0 before the first successful decode.
func (s *Sequence) Width() float64 {
	return s.width
}

// Height returns the sequence height, 0 before the first successful decode.
func (s *Sequence) Height() float64 {
	return s.height
}

// IsLoaded reports whether the sequence has finished loading.
func (s *Sequence) IsLoaded() bool {
	return s.loaded
}

// IsLoading reports whether a background load is still running.
func (s *Sequence) IsLoading() bool {
	return s.loader != nil && !s.loader.finished()
}

// LoadError returns the error of the last failed load, nil after a
// successful load or an Unload. A cancelled load is not an error.
func (s *Sequence) LoadError() error {
	return s.loadErr
}

// PercentLoaded reports preload progress: 1.0 once loaded, the fraction of
// frames processed while a preload runs, and 0.0 otherwise. Monotonic within
// one preload run; a cancelled load freezes at its last value until Unload.
func (s *Sequence) PercentLoaded() float64 {
	if s.loaded {
		return 1.0
	}
	if total := s.total.Load(); total > 0 {
		return float64(s.progress.Load()) / float64(total)
	}
	return 0.0
}
