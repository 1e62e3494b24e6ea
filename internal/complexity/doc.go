// Package complexity estimates Lempel-Ziv complexity of integer symbol
// sequences.
//
// Two estimators share one parse loop and one matching primitive:
//
//   - LZ76 follows Kaspar & Schuster (1987). At a factor start l the copied
//     part may be any earlier substring starting before l, including one that
//     runs into the text being copied. The factor is the copied part plus one
//     innovative symbol, except that the last factor stops at the end of the
//     sequence.
//   - LZ77 is the greedy factorization whose copy source lies entirely inside
//     the already parsed prefix. A factor is either the longest such copy or a
//     single literal.
//
// Both return the number of factors together with the normalized complexity
// count*log(n)/n, which is NaN for n <= 1. Factor source positions are an
// implementation detail; the count depends only on match lengths.
package complexity
