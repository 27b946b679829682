/*
go-poserepair repairs missing or corrupted 2D keypoints in a DWPose/OpenPose
style pose estimation result by borrowing limb proportions from a known good
reference pose, typically the previous frame or a canonical pose of the same
person.

The root package defines the keypoint data model and the JSON codec for the
OpenPose "people" document format.  The restore subpackage implements the
restoration algorithms (affine estimation between the two poses, hierarchical
parent to child offset transfer, confidence propagation and canvas clipping).
The render subpackage draws restored skeletons onto an image canvas.

See example code and usage in the example subdirectory.
*/
package poserepair
