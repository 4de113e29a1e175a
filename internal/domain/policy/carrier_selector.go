// Package policy contains pure business rules of the shipping domain.
package policy

import "github.com/hapkiduki/shipping-go/internal/domain/valueobject"

// Carrier bands, in kilograms and declared value.
const (
	LightPackageMaxWeight  = 5.0
	MediumPackageMaxWeight = 20.0
	MediumPackageMinValue  = 50.0
	MediumPackageMaxValue  = 2000.0
)

// SelectCarrier picks the preferred carrier for a package. Rules are
// evaluated in order and the first match wins:
//
//  1. weight < 5                                 -> envia
//  2. 5 <= weight <= 20 and 50 <= value <= 2000  -> welivery
//  3. weight > 20 or value > 2000                -> correo
//  4. anything else                              -> welivery
//
// Rule 4 catches medium packages whose value is below the welivery band,
// e.g. SelectCarrier(5, 10) is welivery, not correo.
func SelectCarrier(weight, value float64) valueobject.Carrier {
	if weight < LightPackageMaxWeight {
		return valueobject.CarrierEnvia
	}

	if weight >= LightPackageMaxWeight && weight <= MediumPackageMaxWeight &&
		value >= MediumPackageMinValue && value <= MediumPackageMaxValue {
		return valueobject.CarrierWelivery
	}

	if weight > MediumPackageMaxWeight || value > MediumPackageMaxValue {
		return valueobject.CarrierCorreo
	}

	return valueobject.CarrierWelivery
}
