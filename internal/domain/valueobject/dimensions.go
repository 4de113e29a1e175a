package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a package measure is negative.
var ErrInvalidDimensions = errors.New("package dimensions cannot be negative")

// Dimensions represents the physical size of a package in centimeters.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewDimensions creates a validated Dimensions value object.
//
// Parameters:
//   - length: Length in centimeters
//   - width: Width in centimeters
//   - height: Height in centimeters
//
// Returns:
//   - Dimensions: new Dimensions value object
//   - error: ErrInvalidDimensions if any measure is negative
func NewDimensions(length, width, height float64) (Dimensions, error) {
	d := Dimensions{Length: length, Width: width, Height: height}
	if err := d.Validate(); err != nil {
		return Dimensions{}, err
	}
	return d, nil
}

// Validate checks that no measure is negative.
func (d Dimensions) Validate() error {
	if d.Length < 0 || d.Width < 0 || d.Height < 0 {
		return ErrInvalidDimensions
	}
	return nil
}

// Volume calculates the volume in cubic centimeters.
func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// VolumetricWeight calculates the volumetric weight in kg using a DIM factor of 5000.
func (d Dimensions) VolumetricWeight() float64 {
	return d.Volume() / 5000
}

// IsEmpty checks if all dimensions are zero.
func (d Dimensions) IsEmpty() bool {
	return d.Length == 0 && d.Width == 0 && d.Height == 0
}

// String returns a formatted representation (e.g., "30.0x20.0x10.0 cm").
func (d Dimensions) String() string {
	return fmt.Sprintf("%.1fx%.1fx%.1f cm", d.Length, d.Width, d.Height)
}
