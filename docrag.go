// Package docrag ingests a documentation website into a searchable semantic
// index and answers natural-language questions against it via
// retrieval-augmented generation. It crawls the site, cleans and chunks page
// content, embeds chunks in batches, and synchronizes them with a vector
// store that backs a chat endpoint.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., qdrant/, gemini/, rod/).
package docrag
