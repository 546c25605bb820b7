package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
	"github.com/xaionaro-go/avinterp/logger"
)

// input decodes the first video stream of a media file.
type input struct {
	formatContext *astiav.FormatContext
	stream        *astiav.Stream
	codecContext  *astiav.CodecContext
	frameRate     astiav.Rational
	packet        *astiav.Packet
	frame         *astiav.Frame
}

func openInput(
	ctx context.Context,
	closer *astikit.Closer,
	url string,
) (_ret *input, _err error) {
	logger.Debugf(ctx, "openInput(ctx, '%s')", url)
	defer func() { logger.Debugf(ctx, "/openInput(ctx, '%s'): %v", url, _err) }()

	in := &input{}
	if in.formatContext = astiav.AllocFormatContext(); in.formatContext == nil {
		return nil, errors.New("unable to allocate an input format context")
	}
	closer.Add(in.formatContext.Free)

	if err := in.formatContext.OpenInput(url, nil, nil); err != nil {
		return nil, fmt.Errorf("unable to open '%s': %w", url, err)
	}
	closer.Add(in.formatContext.CloseInput)

	if err := in.formatContext.FindStreamInfo(nil); err != nil {
		return nil, fmt.Errorf("unable to find the stream info: %w", err)
	}

	for _, s := range in.formatContext.Streams() {
		if s.CodecParameters().MediaType() == astiav.MediaTypeVideo {
			in.stream = s
			break
		}
	}
	if in.stream == nil {
		return nil, fmt.Errorf("'%s' has no video streams", url)
	}

	codec := astiav.FindDecoder(in.stream.CodecParameters().CodecID())
	if codec == nil {
		return nil, fmt.Errorf("unable to find a decoder for %s", in.stream.CodecParameters().CodecID())
	}
	if in.codecContext = astiav.AllocCodecContext(codec); in.codecContext == nil {
		return nil, errors.New("unable to allocate a decoder context")
	}
	closer.Add(in.codecContext.Free)

	if err := in.stream.CodecParameters().ToCodecContext(in.codecContext); err != nil {
		return nil, fmt.Errorf("unable to configure the decoder: %w", err)
	}
	in.frameRate = in.formatContext.GuessFrameRate(in.stream, nil)
	in.codecContext.SetFramerate(in.frameRate)
	if err := in.codecContext.Open(codec, nil); err != nil {
		return nil, fmt.Errorf("unable to open the decoder: %w", err)
	}
	in.codecContext.SetTimeBase(in.stream.TimeBase())

	in.packet = astiav.AllocPacket()
	closer.Add(in.packet.Free)
	in.frame = astiav.AllocFrame()
	closer.Add(in.frame.Free)

	logger.Infof(ctx, "input video: %dx%d %s @ %s fps, time base %s",
		in.codecContext.Width(), in.codecContext.Height(), in.codecContext.PixelFormat(),
		in.frameRate, in.stream.TimeBase(),
	)
	return in, nil
}

func (in *input) TimeBase() astiav.Rational {
	return in.codecContext.TimeBase()
}

// ReadFrames decodes the whole stream calling the callback for every frame;
// the frame is valid only during the call.
func (in *input) ReadFrames(
	ctx context.Context,
	callback func(*astiav.Frame) error,
) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		isEOF, err := in.readPacket(ctx, callback)
		if err != nil {
			return err
		}
		if isEOF {
			break
		}
	}

	if err := in.codecContext.SendPacket(nil); err != nil && !errors.Is(err, astiav.ErrEof) {
		return fmt.Errorf("unable to flush the decoder: %w", err)
	}
	return in.receiveFrames(callback)
}

func (in *input) readPacket(
	ctx context.Context,
	callback func(*astiav.Frame) error,
) (bool, error) {
	if err := in.formatContext.ReadFrame(in.packet); err != nil {
		if errors.Is(err, astiav.ErrEof) {
			return true, nil
		}
		return false, fmt.Errorf("unable to read a packet: %w", err)
	}
	defer in.packet.Unref()

	if in.packet.StreamIndex() != in.stream.Index() {
		return false, nil
	}
	in.packet.RescaleTs(in.stream.TimeBase(), in.codecContext.TimeBase())
	if err := in.codecContext.SendPacket(in.packet); err != nil {
		return false, fmt.Errorf("unable to send a packet to the decoder: %w", err)
	}
	return false, in.receiveFrames(callback)
}

func (in *input) receiveFrames(
	callback func(*astiav.Frame) error,
) error {
	for {
		if err := in.codecContext.ReceiveFrame(in.frame); err != nil {
			if errors.Is(err, astiav.ErrEof) || errors.Is(err, astiav.ErrEagain) {
				return nil
			}
			return fmt.Errorf("unable to receive a frame from the decoder: %w", err)
		}
		err := callback(in.frame)
		in.frame.Unref()
		if err != nil {
			return err
		}
	}
}
