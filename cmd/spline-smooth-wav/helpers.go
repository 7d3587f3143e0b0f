package main

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	channels     int
	bitDepth     int
	totalSamples int64
	format       *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	// Open input file
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	// Create WAV decoder
	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	// Read format info
	format := decoder.Format()
	inputRate := format.SampleRate
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", inputRate, channels, bitDepth)
	}

	// Get total duration for progress reporting and buffer sizing
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalSamples := int64(duration.Seconds() * float64(inputRate))

	return &wavInputInfo{
		file:         inputFile,
		decoder:      decoder,
		rate:         inputRate,
		channels:     channels,
		bitDepth:     bitDepth,
		totalSamples: totalSamples,
		format:       format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps output file and fast writer.
type wavOutputWriter struct {
	file   *os.File
	writer *fastWAVWriter
}

// createWAVOutput creates output file and writer.
func createWAVOutput(
	path string,
	sampleRate, bitDepth, channels int,
) (*wavOutputWriter, error) {
	// Create output file
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	// Create fast WAV writer
	fastWriter, err := newFastWAVWriter(outputFile, sampleRate, bitDepth, channels)
	if err != nil {
		_ = outputFile.Close()
		return nil, fmt.Errorf("failed to create WAV writer: %w", err)
	}

	return &wavOutputWriter{
		file:   outputFile,
		writer: fastWriter,
	}, nil
}

// WriteSamples writes samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	return w.writer.WriteSamples(samples)
}

// Close closes the output writer and file.
func (w *wavOutputWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		return err
	}
	return w.file.Close()
}

// smoothBuffers holds the preallocated decode and encode buffers.
type smoothBuffers[F Float] struct {
	intBuffer    *audio.IntBuffer
	channelBufs  [][]F
	outputIntBuf []int
	invMaxVal    float64
	maxVal       float64
}

// newSmoothBuffers creates and preallocates all chunk-sized buffers.
func newSmoothBuffers[F Float](channels, bitDepth int, format *audio.Format) *smoothBuffers[F] {
	// Reused across decode iterations (reduces GC pressure)
	intBuffer := &audio.IntBuffer{
		Data:   make([]int, bufferSize*channels),
		Format: format,
	}

	// Per-channel chunk buffers
	channelBufs := make([][]F, channels)
	for ch := range channels {
		channelBufs[ch] = make([]F, bufferSize)
	}

	// Interleaved output chunk buffer
	outputIntBuf := make([]int, bufferSize*channels)

	// Precompute max value for bit depth
	maxVal := getMaxValue(bitDepth)
	invMaxVal := 1.0 / maxVal

	return &smoothBuffers[F]{
		intBuffer:    intBuffer,
		channelBufs:  channelBufs,
		outputIntBuf: outputIntBuf,
		invMaxVal:    invMaxVal,
		maxVal:       maxVal,
	}
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// smoothChannelData smooths every channel buffer.
// Handles both parallel and sequential modes based on config.
func smoothChannelData[F Float](
	channelData [][]F,
	lambda float64,
	parallel bool,
) ([][]F, error) {
	// Parallel processing for multichannel
	if parallel && len(channelData) > 1 {
		return smoothParallel(channelData, lambda)
	}

	// Sequential processing
	return smoothSequential(channelData, lambda)
}

// smoothParallel processes channels concurrently.
func smoothParallel[F Float](channelData [][]F, lambda float64) ([][]F, error) {
	channels := len(channelData)
	smoothed := make([][]F, channels)
	var wg sync.WaitGroup
	var processErr error
	var errMu sync.Mutex

	for ch := range channels {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()
			result, err := smoothChannel(channelData[channel], lambda)
			if err != nil {
				errMu.Lock()
				if processErr == nil {
					processErr = fmt.Errorf("smoothing failed on channel %d: %w", channel, err)
				}
				errMu.Unlock()
				return
			}
			smoothed[channel] = result
		}(ch)
	}
	wg.Wait()

	if processErr != nil {
		return nil, processErr
	}

	return smoothed, nil
}

// smoothSequential processes channels one by one.
func smoothSequential[F Float](channelData [][]F, lambda float64) ([][]F, error) {
	channels := len(channelData)
	smoothed := make([][]F, channels)
	for ch := range channels {
		result, err := smoothChannel(channelData[ch], lambda)
		if err != nil {
			return nil, fmt.Errorf("smoothing failed on channel %d: %w", ch, err)
		}
		smoothed[ch] = result
	}
	return smoothed, nil
}
