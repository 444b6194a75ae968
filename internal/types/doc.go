// Package types provides the data model shared by the job search and application run:
// search profiles, run mode policy, vacancies and application log entries.
package types
