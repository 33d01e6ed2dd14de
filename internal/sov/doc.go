// Package sov implements source-of-volume attribution for new product
// launches.
//
// For each launch, revenue in the post-launch window is decomposed into
// three independently derived sources measured against a symmetric
// pre-launch window:
//
//  1. Cannibalization: per-product revenue declines of same-brand,
//     same-category siblings, floored at zero per product (gains never
//     offset losses elsewhere).
//  2. Competitor displacement: the aggregate revenue decline of
//     same-category products under other brands, floored at zero.
//  3. Market expansion: the change in total category revenue net of the
//     new product's own revenue; may be negative.
//
// The three breakdown percentages are each relative to the new product's
// own revenue and are intentionally NOT constrained to sum to 100%:
// competitor displacement and market expansion are derived independently
// rather than as residuals of a closed partition, so the attribution is
// non-exhaustive. Note also the measurement asymmetry: cannibalization is
// per-product-then-summed while competitor displacement is aggregate-level.
// Both behaviors are preserved deliberately.
//
// Cannibalization significance is assessed per sibling with a two-sample
// t-test over monthly revenues when both windows hold at least two monthly
// observations; thinner series are skipped, not failed.
package sov
