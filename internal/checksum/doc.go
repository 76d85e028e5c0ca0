// Package checksum hashes script content with and without formatting.
//
//   - Raw checksum: hash of the exact bytes (detects all changes)
//   - Normalized checksum: hash after removing comments, lowercasing and
//     collapsing whitespace (detects logical changes only)
//
// String literals and quoted identifiers are kept byte for byte during
// normalization, since their content is significant to Firebird.
//
// # Example Usage
//
//	calculator := checksum.New()
//	if calculator.CalculateNormalized(old) == calculator.CalculateNormalized(fresh) {
//	    // same schema, possibly reformatted
//	}
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
