package autodiff

// ResetIDs rewinds the identifier allocator between tests. Not part of
// the package API.
var ResetIDs = resetIDs
