package database

import (
	"runtime"

	"github.com/klauspost/compress/zstd"
)

var encoder *zstd.Encoder = func() *zstd.Encoder {
	encoder, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderCRC(true),
		zstd.WithEncoderConcurrency(runtime.NumCPU()),
	)
	if err != nil {
		panic(err)
	}
	return encoder
}()

var decoder *zstd.Decoder = func() *zstd.Decoder {
	decoder, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(runtime.NumCPU()),
	)
	if err != nil {
		panic(err)
	}
	return decoder
}()

func compress(in []byte) []byte {
	return encoder.EncodeAll(in, nil)
}

func decompress(in []byte) (out []byte, err error) {
	out, err = decoder.DecodeAll(in, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}
