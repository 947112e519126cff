/*
go-annotate is an image annotation engine for class labelled bounding
boxes and polygon segment masks.  Objects can come from an external
detection provider or be drawn by hand, edited by moving and resizing
box and mask together, and exported to the normalized YOLO text format.

The engine keeps three coordinate spaces consistent: normalized [0,1]
object space, absolute pixel space and the scaled, panned view space the
pointer reports in.  It never draws or runs inference itself, rendering
surfaces and detectors plug in as collaborators.

See example code and usage in the example subdirectory.
*/
package annotate
