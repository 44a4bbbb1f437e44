// Package sevenzip provides archive listing, creation, extraction, deletion,
// integrity testing and single entry previews using the 7-Zip console program.
//
// The package does not compress or decompress anything itself. Each operation
// builds the arguments for the archiver, runs it as a subprocess, waits for it
// to exit and then translates its text output into structured results.
//
// The package uses the following terminal program.
//
//  1. [7zz] - 7-Zip for Linux: console version
//
// The legacy 7z and 7za programs from the p7zip package also work,
// but p7zip is unmaintained and should be avoided.
//
// Archives are listed using the technical listing format of the archiver,
// which any substitute program must also print, see the listing package.
//
// [7zz]: https://www.7-zip.org/
package sevenzip
