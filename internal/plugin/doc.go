// Package plugin drives one extension through its lifecycle.
//
// A Manager moves an extension from Inactive through Activating to Active
// and back through Deactivating. Activation loads the configuration,
// registers the extension's commands, attaches its hooks and readies the
// settings panel, in that order. Deactivation releases every hook,
// clears the commands and waits for pending settings saves, whether or not
// activation fully succeeded.
package plugin
