// Package validate gates create and update submissions.
//
// Form runs the local schema checks of a resource (required fields, email
// and phone formats, enum membership, category selection). The
// UniquenessValidator then asks the API whether any other record already
// holds a value of a guarded field. One lookup per field runs concurrently
// and all of them are joined before the result is evaluated, so every
// duplicate is reported in a single pass.
//
// A lookup that fails yields an Unverified outcome. It blocks submission the
// same way a duplicate does: uniqueness that cannot be confirmed is not
// assumed.
package validate
