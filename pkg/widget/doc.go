// Package widget wraps a finished figure into a renderable widget.
//
// Packaging attaches everything the host renderer needs: a DOM element
// identifier, a sizing policy, the ordered list of static asset
// dependencies, and the pre-render build step that turns the figure's
// deferred mappings into wire JSON.
//
// # Lifecycle
//
// A widget is created once per figure at packaging time and is immutable
// afterwards, except that the dependency list may be filtered (see
// [RemovePolyfill]) before handoff. The build step does not run at
// packaging time; the host calls [Widget.Render] once per render pass.
//
// # Wire Format
//
// The serialized figure is `{"data": [...traces], "layout": {...}}`, the
// pre-existing format of the external charting library. The serializer
// encodes NaN and infinities as null so the library renders them as gaps.
package widget
