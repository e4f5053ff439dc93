// Package schema loads declarative YAML entity definitions and builds
// the mapping model they describe.
//
// A schema document declares entities with scalar fields, embedded
// attribute groups, and edges to other entities:
//
//	entities:
//	  - name: User
//	    fields: [name, age]
//	    embedded:
//	      - name: address
//	        fields: [city, zip]
//	    edges:
//	      - name: posts
//	        type: Post
//	        collection: true
//	  - name: Admin
//	    extends: User
//	    fields: [level]
//
// Load parses a document and builds a *mapping.Model in one step;
// Parse and (*File).Build split the two phases when the document needs
// inspection in between.
package schema
