// Package language lists the catalog response languages offered to users
// and maps between region tags, ISO 639-1 codes and display names.
package language
