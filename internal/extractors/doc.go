// Package extractors converts raw files into plain text strings,
// dispatching on file extension. One subpackage per format family:
// plaintext (direct reads with encoding fallback), pdf, docx.
//
// Extraction is resilient by contract: a corrupt file, a parser failure
// or an unsupported format logs a warning and yields an empty string so
// one bad file among thousands never aborts an ingestion run.
package extractors
