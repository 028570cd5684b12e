// Package normalisers turns fetched documents into the forms ghmcp stores.
// Each subpackage handles one input format.
package normalisers
