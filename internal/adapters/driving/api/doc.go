// Package api serves the document repository over HTTP.
//
// Routes:
//
//	POST   /api/upload/            multipart upload (file, title, tags)
//	GET    /api/documents/         all documents, newest first
//	GET    /api/documents/{id}/    one document
//	GET    /api/documents/{id}/file
//	GET    /api/search/?q=         index search with substring fallback
//	GET    /api/stats/             totals and last upload
//	DELETE /api/delete/{id}/       remove file, record and index entry
//	POST   /api/reindex/           rebuild the search index
//	GET    /media/*                stored files
//	GET    /healthz
//	GET    /metrics
package api
