/*
Package nodeid provides the structured address of a node in the model graph.

A model node is addressed by its path from the graph root, written as a
dot-separated sequence of segments, e.g. `build.components.0`. Elements of a
collection are named after their ordinal, so the third element appended to
`build.components` lives at `build.components.2`.

Addresses are the only way one node refers to another: a child records its
parent's address and views record the address of the node they project.
Nothing in the graph holds an owning pointer to another node.
*/
package nodeid
