package lambda

// monopoleSample mirrors the header and first rows of firas_monopole_spec_v1.txt.
const monopoleSample = `# FIRAS CMB monopole spectrum
# Reference: Fixsen et al. 1996, ApJ 473, 576.
#
# Column 1 = frequency from Table 4 of Fixsen et al., units = cm^-1
# Column 2 = FIRAS monopole spectrum computed as the sum
#             of a 2.725 K BB spectrum and the
#             residual in column 3, units = MJy/sr
# Column 3 = residual monopole spectrum from Table 4 of Fixsen et al.,
#             units = kJy/sr
# Column 4 = spectrum uncertainty (1-sigma) from Table 4 of Fixsen et al.,
#             units = kJy/sr
# Column 5 = modeled Galaxy spectrum at the Galactic poles from Table 4 of
#             Fixsen et al., units = kJy/sr
#
  2.27   200.723     5     14     4
  2.72   249.508     9     19     3
  3.18   293.024    15     25     -1

  3.63   327.770     4     23     -1   # trailing comment
`
