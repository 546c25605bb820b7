package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
	"github.com/xaionaro-go/avinterp/logger"
	"github.com/xaionaro-go/avinterp/types"
	"github.com/xaionaro-go/avinterp/urltools"
	"go.uber.org/atomic"
)

type outputConfig struct {
	Resolution        types.Resolution
	SampleAspectRatio astiav.Rational
	TimeBase          astiav.Rational
	FrameRate         astiav.Rational
}

// output encodes frames into a media file.
type output struct {
	formatContext *astiav.FormatContext
	stream        *astiav.Stream
	codecContext  *astiav.CodecContext
	packet        *astiav.Packet

	FramesWritten atomic.Uint64
	BytesWritten  atomic.Uint64
}

func openOutput(
	ctx context.Context,
	closer *astikit.Closer,
	url string,
	cfg outputConfig,
) (_ret *output, _err error) {
	logger.Debugf(ctx, "openOutput(ctx, '%s')", url)
	defer func() { logger.Debugf(ctx, "/openOutput(ctx, '%s'): %v", url, _err) }()

	out := &output{}
	formatName := urltools.FormatName(url)
	if !urltools.IsFile(url) && formatName == "" {
		return nil, fmt.Errorf("unable to detect the container format for '%s'", url)
	}
	formatContext, err := astiav.AllocOutputFormatContext(nil, formatName, url)
	if err != nil {
		return nil, fmt.Errorf("unable to allocate an output format context: %w", err)
	}
	if formatContext == nil {
		return nil, errors.New("the output format context is nil")
	}
	out.formatContext = formatContext
	closer.Add(out.formatContext.Free)

	if out.stream = out.formatContext.NewStream(nil); out.stream == nil {
		return nil, errors.New("unable to create an output stream")
	}

	codec := astiav.FindEncoder(astiav.CodecIDH264)
	if codec == nil {
		codec = astiav.FindEncoder(astiav.CodecIDMpeg4)
	}
	if codec == nil {
		return nil, errors.New("unable to find a video encoder")
	}
	if out.codecContext = astiav.AllocCodecContext(codec); out.codecContext == nil {
		return nil, errors.New("unable to allocate an encoder context")
	}
	closer.Add(out.codecContext.Free)

	out.codecContext.SetWidth(int(cfg.Resolution.Width))
	out.codecContext.SetHeight(int(cfg.Resolution.Height))
	pixelFormat := astiav.PixelFormatYuv420P
	if v := codec.PixelFormats(); len(v) > 0 {
		pixelFormat = v[0]
	}
	out.codecContext.SetPixelFormat(pixelFormat)
	out.codecContext.SetSampleAspectRatio(cfg.SampleAspectRatio)
	out.codecContext.SetTimeBase(cfg.TimeBase)
	out.codecContext.SetFramerate(cfg.FrameRate)
	if out.formatContext.OutputFormat().Flags().Has(astiav.IOFormatFlagGlobalheader) {
		out.codecContext.SetFlags(out.codecContext.Flags() | astiav.CodecContextFlags(astiav.CodecContextFlagGlobalHeader))
	}

	if err := out.codecContext.Open(codec, nil); err != nil {
		return nil, fmt.Errorf("unable to open the encoder %s: %w", codec.Name(), err)
	}
	if err := out.stream.CodecParameters().FromCodecContext(out.codecContext); err != nil {
		return nil, fmt.Errorf("unable to set the codec parameters of the output stream: %w", err)
	}
	out.stream.SetTimeBase(out.codecContext.TimeBase())
	out.stream.SetAvgFrameRate(cfg.FrameRate)

	if !out.formatContext.OutputFormat().Flags().Has(astiav.IOFormatFlagNofile) {
		ioContext, err := astiav.OpenIOContext(url, astiav.NewIOContextFlags(astiav.IOContextFlagWrite), nil, nil)
		if err != nil {
			return nil, fmt.Errorf("unable to open '%s' for writing: %w", url, err)
		}
		closer.AddWithError(ioContext.Close)
		out.formatContext.SetPb(ioContext)
	}

	if err := out.formatContext.WriteHeader(nil); err != nil {
		return nil, fmt.Errorf("unable to write the header: %w", err)
	}

	out.packet = astiav.AllocPacket()
	closer.Add(out.packet.Free)

	logger.Infof(ctx, "output video: %s %s @ %s fps (%s)", cfg.Resolution, pixelFormat, cfg.FrameRate, codec.Name())
	return out, nil
}

func (out *output) PixelFormat() astiav.PixelFormat {
	return out.codecContext.PixelFormat()
}

// WriteFrame encodes the frame; a nil frame flushes the encoder.
func (out *output) WriteFrame(
	ctx context.Context,
	f *astiav.Frame,
) error {
	if err := out.codecContext.SendFrame(f); err != nil {
		return fmt.Errorf("unable to send a frame to the encoder: %w", err)
	}
	if f != nil {
		out.FramesWritten.Inc()
	}
	for {
		isDone, err := out.writePacket(ctx)
		if err != nil {
			return err
		}
		if isDone {
			return nil
		}
	}
}

func (out *output) writePacket(ctx context.Context) (bool, error) {
	if err := out.codecContext.ReceivePacket(out.packet); err != nil {
		if errors.Is(err, astiav.ErrEof) || errors.Is(err, astiav.ErrEagain) {
			return true, nil
		}
		return false, fmt.Errorf("unable to receive a packet from the encoder: %w", err)
	}
	defer out.packet.Unref()

	out.packet.SetStreamIndex(out.stream.Index())
	out.packet.RescaleTs(out.codecContext.TimeBase(), out.stream.TimeBase())
	out.BytesWritten.Add(uint64(out.packet.Size()))
	logger.Tracef(ctx, "writing a packet: pts:%d size:%d", out.packet.Pts(), out.packet.Size())
	if err := out.formatContext.WriteInterleavedFrame(out.packet); err != nil {
		return false, fmt.Errorf("unable to write a packet: %w", err)
	}
	return false, nil
}

// Finish flushes the encoder and writes the trailer.
func (out *output) Finish(ctx context.Context) error {
	if err := out.WriteFrame(ctx, nil); err != nil {
		return err
	}
	if err := out.formatContext.WriteTrailer(); err != nil {
		return fmt.Errorf("unable to write the trailer: %w", err)
	}
	return nil
}
