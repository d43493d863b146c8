package dsp

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTShift moves the zero-frequency bin to the center, writing into dst.
// dst must not alias src. If dst is nil a new slice is allocated.
func FFTShift(dst, src []complex128) []complex128 {
	n := len(src)
	return roll(dst, src, n/2)
}

// IFFTShift undoes FFTShift, including for odd lengths.
func IFFTShift(dst, src []complex128) []complex128 {
	n := len(src)
	return roll(dst, src, n-n/2)
}

// roll writes src circularly shifted right by k into dst.
func roll(dst, src []complex128, k int) []complex128 {
	n := len(src)
	if dst == nil {
		dst = make([]complex128, n)
	}
	if n == 0 {
		return dst[:0]
	}
	k %= n
	copy(dst[k:], src[:n-k])
	copy(dst[:k], src[n-k:])
	return dst
}

// Spectral is a centered Fourier pair along one row:
//
//	Forward(x) = fftshift(fft(ifftshift(x)))
//	Inverse(X) = fftshift(ifft(ifftshift(X)))
//
// The forward transform is unnormalized and the inverse scales by 1/n, so
// Inverse(Forward(x)) == x. A Spectral is not safe for concurrent use.
type Spectral struct {
	n       int
	fft     *fourier.CmplxFFT
	scratch []complex128
	coeffs  []complex128
}

// NewSpectral builds a transform pair for rows of length n.
func NewSpectral(n int) *Spectral {
	return &Spectral{
		n:       n,
		fft:     fourier.NewCmplxFFT(n),
		scratch: make([]complex128, n),
		coeffs:  make([]complex128, n),
	}
}

// Len returns the row length the transform was built for.
func (s *Spectral) Len() int { return s.n }

// Forward writes the centered spectrum of src into dst. dst may alias src.
func (s *Spectral) Forward(dst, src []complex128) []complex128 {
	s.check(src)
	IFFTShift(s.scratch, src)
	s.fft.Coefficients(s.coeffs, s.scratch)
	return FFTShift(s.out(dst), s.coeffs)
}

// Inverse writes the centered inverse transform of src into dst. dst may alias src.
func (s *Spectral) Inverse(dst, src []complex128) []complex128 {
	s.check(src)
	IFFTShift(s.scratch, src)
	s.fft.Sequence(s.coeffs, s.scratch)
	inv := complex(1/float64(s.n), 0)
	for i := range s.coeffs {
		s.coeffs[i] *= inv
	}
	return FFTShift(s.out(dst), s.coeffs)
}

func (s *Spectral) check(src []complex128) {
	if len(src) != s.n {
		panic("dsp: spectral length mismatch")
	}
}

func (s *Spectral) out(dst []complex128) []complex128 {
	if dst == nil {
		return make([]complex128, s.n)
	}
	if len(dst) != s.n {
		panic("dsp: spectral length mismatch")
	}
	return dst
}
