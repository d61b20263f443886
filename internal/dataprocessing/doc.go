// Package dataprocessing implements the transaction cleaning pipeline:
// filtering out unusable rows, rule-based category classification, loyalty
// segmentation, group-median price imputation, and discount/tax pricing.
//
// The stages are pure with respect to their configuration: the same input
// dataset and PipelineConfig always produce the same output dataset, so a
// rerun over unchanged workbooks yields byte-identical exports.
//
// Stage order matters. Classification runs before imputation because the
// imputer's reference groups are categories; pricing runs last because it
// reads both the category and the (possibly imputed) unit price.
package dataprocessing
