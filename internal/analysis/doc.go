// Package analysis computes the ranked and filtered extracts that make up the
// daily market summary. All operations are read-only over the RecordSet and
// deterministic: ties are broken by source order, so the same input always
// yields the same output.
package analysis
