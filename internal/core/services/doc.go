// Package services implements the driving ports: the ingestion pipeline
// that walks document trees into the collection backend, and the search
// service that answers retrieval queries.
package services
