// Package domain models the COBE/FIRAS cosmic microwave background monopole
// spectrum and the blackbody fit made against it.
//
// # Data Source
//
// The FIRAS monopole spectrum is published by the NASA Legacy Archive for
// Microwave Background Data Analysis (LAMBDA) at
// https://lambda.gsfc.nasa.gov/product/cobe/firas_monopole_get.html as a
// whitespace-delimited text file with '#' comment lines.
//
// # FIRAS Column Layout
//
//	col 1  frequency      cm^-1
//	col 2  intensity      MJy/sr  (2.725 K blackbody plus residual)
//	col 3  residual       kJy/sr
//	col 4  uncertainty    kJy/sr  (1 sigma)
//	col 5  galaxy model   kJy/sr
//
// Only columns 1, 2 and 4 are kept. Uncertainties are published in kJy/sr,
// three orders of magnitude finer than the intensities, so ingestion divides
// them by [UncertaintyScale] before they are used as fit weights.
//
// # Model
//
// The spectrum is fitted with a scaled Planck law in frequency:
//
//	I(nu) = A * nu_hz^3 / (exp(h*nu_hz / (k_B*T)) - 1),   nu_hz = nu * c
//
// The constants are fixed four-digit literals. Their rounding is absorbed by
// the amplitude A and shifts T by a few parts in 10^4, well inside the
// calibration uncertainty of the instrument. See [Planck].
package domain
