// Package reconcile links a working directory to its remote and publishes the first commit.
//
// The sequence is linear: initialize when needed, resolve the remote, reconcile with an
// existing remote repository when one is found, write ignore rules, then stage, commit,
// rename the branch and optionally push. Declining a step either ends the run cleanly or
// aborts it, as reported through the package sentinel errors.
package reconcile
