package strata

import "fmt"

// LayerLink connects one LeaderLayer with any number of FollowerLayers so
// the followers can be positioned relative to the leader from anywhere in
// the same tree. The link holds the leader while it is attached and never
// owns it.
type LayerLink struct {
	leader *LeaderLayer
}

// NewLayerLink returns an unlinked LayerLink.
func NewLayerLink() *LayerLink {
	return &LayerLink{}
}

// Leader returns the attached leader, or nil.
func (k *LayerLink) Leader() *LeaderLayer { return k.leader }

// String reports whether the link has a leader.
func (k *LayerLink) String() string {
	if k.leader != nil {
		return fmt.Sprintf("LayerLink(%p)(<linked>)", k)
	}
	return fmt.Sprintf("LayerLink(%p)(<dangling>)", k)
}

// LeaderLayer marks a position that followers sharing its link track. It
// registers with the link on attach and unregisters on detach; at most one
// leader may be attached to a link at a time.
type LeaderLayer struct {
	ContainerLayer

	link   *LayerLink
	offset Offset

	// lastOffset is where the leader was emitted in the last scene build,
	// nil until it has been emitted since attaching.
	lastOffset *Offset
}

// NewLeaderLayer creates a leader for link whose children are painted at
// offset.
func NewLeaderLayer(link *LayerLink, offset Offset) *LeaderLayer {
	if link == nil {
		panic("strata: LeaderLayer needs a link")
	}
	l := &LeaderLayer{link: link, offset: offset}
	l.init(l)
	return l
}

// Link returns the link followers use to find this leader.
func (l *LeaderLayer) Link() *LayerLink { return l.link }

// Offset returns where the children are painted.
func (l *LeaderLayer) Offset() Offset { return l.offset }

// SetOffset changes where the children are painted. The leader is re-emitted
// every frame, so no dirty marking is needed.
func (l *LeaderLayer) SetOffset(o Offset) { l.offset = o }

// LastOffset returns the position recorded by the last scene build.
func (l *LeaderLayer) LastOffset() (Offset, bool) {
	if l.lastOffset == nil {
		return Offset{}, false
	}
	return *l.lastOffset, true
}

func (l *LeaderLayer) alwaysNeedsAddToScene() bool { return true }

func (l *LeaderLayer) attachTo(owner any) {
	if l.link.leader != nil {
		panic(fmt.Sprintf("strata: %s already has leader %s", l.link, l.link.leader))
	}
	l.ContainerLayer.attachTo(owner)
	l.lastOffset = nil
	l.link.leader = l
}

func (l *LeaderLayer) detachFrom() {
	if l.link.leader != l {
		panic(fmt.Sprintf("strata: %s is not the leader of %s", l, l.link))
	}
	l.link.leader = nil
	l.lastOffset = nil
	l.ContainerLayer.detachFrom()
}

// AddToScene records offset + layerOffset as the leader's position and, if
// non-zero, pushes it as a translation around the children.
func (l *LeaderLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	last := l.offset.Add(layerOffset)
	l.lastOffset = &last
	var engineLayer EngineLayer
	if !last.IsZero() {
		engineLayer = b.PushTransform(Translation4(last.DX, last.DY, 0))
	}
	l.AddChildrenToScene(b, OffsetZero)
	if !last.IsZero() {
		b.Pop()
	}
	return engineLayer
}

// ApplyTransform translates m by the position recorded in the last scene
// build.
func (l *LeaderLayer) ApplyTransform(child Layer, m *Matrix4) {
	if l.lastOffset != nil && !l.lastOffset.IsZero() {
		m.Translate(l.lastOffset.DX, l.lastOffset.DY)
	}
}

func (l *LeaderLayer) find(p Offset, q *query) bool {
	return l.ContainerLayer.find(p.Sub(l.offset), q)
}

func (l *LeaderLayer) debugProperties() []string {
	return []string{fmt.Sprintf("offset: %s", l.offset), fmt.Sprintf("link: %s", l.link)}
}

// FollowerLayer paints its children in the coordinate space of the leader
// attached to its link. Without a leader it falls back to unlinkedOffset,
// or paints nothing when ShowWhenUnlinked is false.
type FollowerLayer struct {
	ContainerLayer

	link *LayerLink

	// ShowWhenUnlinked selects whether the children are painted while no
	// leader is attached.
	ShowWhenUnlinked bool
	// UnlinkedOffset positions the children while no leader is attached.
	UnlinkedOffset Offset
	// LinkedOffset shifts the children relative to the leader's origin.
	LinkedOffset Offset

	lastOffset    *Offset
	lastTransform *Matrix4

	invertedTransform Matrix4
	inverseOK         bool
	inverseDirty      bool
}

// NewFollowerLayer creates a follower of link.
func NewFollowerLayer(link *LayerLink, showWhenUnlinked bool, unlinkedOffset, linkedOffset Offset) *FollowerLayer {
	if link == nil {
		panic("strata: FollowerLayer needs a link")
	}
	l := &FollowerLayer{
		link:             link,
		ShowWhenUnlinked: showWhenUnlinked,
		UnlinkedOffset:   unlinkedOffset,
		LinkedOffset:     linkedOffset,
		inverseDirty:     true,
	}
	l.init(l)
	return l
}

// Link returns the link to the leader being followed.
func (l *FollowerLayer) Link() *LayerLink { return l.link }

func (l *FollowerLayer) alwaysNeedsAddToScene() bool { return true }

// GetLastTransform returns the transform from the follower's children to
// its own coordinate space established by the last scene build. ok is
// false when the follower was not linked in that build.
func (l *FollowerLayer) GetLastTransform() (m Matrix4, ok bool) {
	if l.lastTransform == nil {
		return Matrix4{}, false
	}
	var last Offset
	if l.lastOffset != nil {
		last = *l.lastOffset
	}
	return Translation4(-last.DX, -last.DY, 0).Multiply(*l.lastTransform), true
}

// collectTransformForLayerChain composes the transforms applied along
// layers, which runs from a descendant (index 0) up to an ancestor.
func collectTransformForLayerChain(layers []Container) Matrix4 {
	m := Identity4()
	for i := len(layers) - 1; i > 0; i-- {
		var child Layer
		if layers[i-1] != nil {
			child = layers[i-1]
		}
		layers[i].ApplyTransform(child, &m)
	}
	return m
}

// establishTransform computes lastTransform from the ancestor chains of the
// follower and its leader. It leaves lastTransform nil when no leader is
// attached or the follower's chain cannot be inverted.
func (l *FollowerLayer) establishTransform() {
	l.lastTransform = nil
	leader := l.link.leader
	if leader == nil {
		return
	}
	if globalDebug {
		if leader.owner != l.owner {
			panic("strata debug: linked LeaderLayer is not in the same layer tree as the FollowerLayer")
		}
		if leader.lastOffset == nil {
			panic("strata debug: LeaderLayer must come before FollowerLayer in paint order")
		}
	}

	ancestors := make(map[Container]struct{})
	for a := l.parent; a != nil; a = a.Parent() {
		ancestors[a] = struct{}{}
	}

	forward := []Container{nil, leader}
	var common Container = leader
	for {
		common = common.Parent()
		if common == nil {
			// Leader and follower do not share a root.
			Logger().Debug("follower and leader share no ancestor", "follower", l, "leader", leader)
			return
		}
		forward = append(forward, common)
		if _, ok := ancestors[common]; ok {
			break
		}
	}

	inverse := []Container{l}
	for c := Container(l); c != common; {
		c = c.Parent()
		inverse = append(inverse, c)
	}

	forwardTransform := collectTransformForLayerChain(forward)
	inverseTransform, ok := collectTransformForLayerChain(inverse).TryInvert()
	if !ok {
		Logger().Debug("follower not linked this frame", "follower", l, "err", ErrSingularTransform)
		return
	}
	m := inverseTransform.Multiply(forwardTransform)
	m.Translate(l.LinkedOffset.DX, l.LinkedOffset.DY)
	l.lastTransform = &m
	l.inverseDirty = true
}

// AddToScene pushes the established transform around the children, or the
// unlinked offset when no transform could be established.
func (l *FollowerLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	if l.link.leader == nil && !l.ShowWhenUnlinked {
		l.lastTransform = nil
		l.lastOffset = nil
		l.inverseDirty = true
		return nil
	}
	l.establishTransform()
	var engineLayer EngineLayer
	if l.lastTransform != nil {
		engineLayer = b.PushTransform(*l.lastTransform)
		l.AddChildrenToScene(b, OffsetZero)
		b.Pop()
		last := l.UnlinkedOffset.Add(layerOffset)
		l.lastOffset = &last
	} else {
		l.lastOffset = nil
		engineLayer = b.PushTransform(Translation4(l.UnlinkedOffset.DX, l.UnlinkedOffset.DY, 0))
		l.AddChildrenToScene(b, OffsetZero)
		b.Pop()
	}
	l.inverseDirty = true
	return engineLayer
}

// ApplyTransform multiplies m by the established transform, or by the
// unlinked offset when there is none.
func (l *FollowerLayer) ApplyTransform(child Layer, m *Matrix4) {
	if l.lastTransform != nil {
		*m = m.Multiply(*l.lastTransform)
		return
	}
	*m = m.Multiply(Translation4(l.UnlinkedOffset.DX, l.UnlinkedOffset.DY, 0))
}

func (l *FollowerLayer) find(p Offset, q *query) bool {
	if l.link.leader == nil {
		if !l.ShowWhenUnlinked {
			return false
		}
		return l.ContainerLayer.find(p.Sub(l.UnlinkedOffset), q)
	}
	if l.inverseDirty {
		l.inverseOK = false
		if l.lastTransform != nil {
			l.invertedTransform, l.inverseOK = l.lastTransform.withoutZ().TryInvert()
		}
		l.inverseDirty = false
	}
	if !l.inverseOK {
		return false
	}
	return l.ContainerLayer.find(l.invertedTransform.TransformPoint(p), q)
}

func (l *FollowerLayer) debugProperties() []string {
	props := []string{fmt.Sprintf("link: %s", l.link)}
	if m, ok := l.GetLastTransform(); ok {
		props = append(props, fmt.Sprintf("transform: %s", m))
	} else {
		props = append(props, "transform: null")
	}
	return props
}
