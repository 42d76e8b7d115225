package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/wavetray/wavetray/internal/audio"
	"github.com/wavetray/wavetray/internal/mpris"
)

// frame lays out one frame: the always-visible tray icon and, when open,
// the popup below it.
func (a *App) frame(gtx layout.Context) layout.Dimensions {
	paint.FillShape(gtx.Ops, a.gv.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	// Esc counts as the host dismissing the popup surface.
	for {
		ev, ok := gtx.Event(key.Filter{Name: key.NameEscape})
		if !ok {
			break
		}
		if e, ok := ev.(key.Event); ok && e.State == key.Press && a.popup != 0 {
			a.dispatch(PopupDismissed{ID: a.popup})
		}
	}

	if a.reveal.animating() || a.expandAnim.animating() {
		gtx.Execute(op.InvalidateCmd{})
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return a.iconArea.Layout(gtx, a.dispatch)
			})
		}),
		layout.Flexed(1, a.layoutPopupRegion),
	)
}

// layoutIconButton is the tray icon. A click toggles the popup; the
// wrapping MouseArea adds the wheel shortcut.
func (a *App) layoutIconButton(gtx layout.Context) layout.Dimensions {
	if a.iconBtn.Clicked(gtx) {
		a.dispatch(TogglePopup{})
	}
	return material.Clickable(gtx, &a.iconBtn, func(gtx layout.Context) layout.Dimensions {
		return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return a.layoutIcon(gtx, a.outputIcon(), 24)
		})
	})
}

// layoutPopupRegion renders the popup card when one is open. Clicks on the
// backdrop dismiss the current surface.
func (a *App) layoutPopupRegion(gtx layout.Context) layout.Dimensions {
	if a.popup == 0 {
		return layout.Dimensions{Size: gtx.Constraints.Min}
	}
	if a.scrim.Clicked(gtx) {
		a.dispatch(PopupDismissed{ID: a.popup})
	}

	gtx.Constraints.Min = gtx.Constraints.Max
	return layout.Stack{Alignment: layout.N}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			return a.scrim.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Min}
			})
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, a.layoutPopupCard)
		}),
	)
}

// layoutPopupCard draws the card background and slides the content in
// while the reveal timeline runs.
func (a *App) layoutPopupCard(gtx layout.Context) layout.Dimensions {
	p := a.reveal.progress(gtx.Now, revealDuration)
	if off := int((1 - p) * float32(gtx.Dp(unit.Dp(8)))); off > 0 {
		defer op.Offset(image.Pt(0, -off)).Push(gtx.Ops).Pop()
	}

	macro := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(8)).Layout(gtx, a.layoutPopup)
	call := macro.Stop()

	r := gtx.Dp(unit.Dp(8))
	paint.FillShape(gtx.Ops, a.gv.Bg2, clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NW:   r, NE: r, SW: r, SE: r,
	}.Op(gtx.Ops))
	call.Add(gtx.Ops)
	return dims
}

// layoutPopup is the popup body: volume rows, device revealers, the media
// block when a player is present, and the settings launcher.
func (a *App) layoutPopup(gtx layout.Context) layout.Dimensions {
	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.sinkRowArea.Layout(gtx, a.dispatch)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			active, _ := a.model.ActiveSinkDevice()
			return a.layoutRevealer(gtx, revealerSpec{
				header:   &a.outputHeaderBtn,
				title:    "Output",
				selected: active.Description,
				devices:  a.model.Sinks,
				active:   a.model.ActiveSink,
				buttons:  &a.sinkDeviceBtns,
				open:     a.expanded == expandOutput,
				toggle:   OutputToggle{},
				choose:   func(i int) Msg { return SetDefaultSink{Index: i} },
			})
		}),
		layout.Rigid(a.layoutDivider),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.sourceRowArea.Layout(gtx, a.dispatch)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			active, _ := a.model.ActiveSourceDevice()
			return a.layoutRevealer(gtx, revealerSpec{
				header:   &a.inputHeaderBtn,
				title:    "Input",
				selected: active.Description,
				devices:  a.model.Sources,
				active:   a.model.ActiveSource,
				buttons:  &a.sourceDeviceBtns,
				open:     a.expanded == expandInput,
				toggle:   InputToggle{},
				choose:   func(i int) Msg { return SetDefaultSource{Index: i} },
			})
		}),
	}

	// The media block is omitted entirely without a player.
	if a.player != nil {
		children = append(children,
			layout.Rigid(a.layoutDivider),
			layout.Rigid(a.layoutMedia),
		)
	}

	children = append(children,
		layout.Rigid(a.layoutDivider),
		layout.Rigid(a.layoutSettingsRow),
	)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

// layoutSinkRow is the output volume row: mute button, slider, percent.
func (a *App) layoutSinkRow(gtx layout.Context) layout.Dimensions {
	if a.sinkMuteBtn.Clicked(gtx) {
		a.dispatch(ToggleSinkMute{})
	}
	return a.layoutVolumeRow(gtx, volumeRowSpec{
		muteBtn:  &a.sinkMuteBtn,
		icon:     a.outputIcon(),
		slider:   &a.sinkSlider,
		value:    a.sinkVolume(),
		axis:     &a.sink,
		onDrag:   func(v int) Msg { return DragSink{Value: v} },
		onCommit: CommitSink{},
	})
}

// layoutSourceRow is the input volume row.
func (a *App) layoutSourceRow(gtx layout.Context) layout.Dimensions {
	if a.sourceMuteBtn.Clicked(gtx) {
		a.dispatch(ToggleSourceMute{})
	}
	return a.layoutVolumeRow(gtx, volumeRowSpec{
		muteBtn:  &a.sourceMuteBtn,
		icon:     a.inputIcon(),
		slider:   &a.sourceSlider,
		value:    a.sourceVolume(),
		axis:     &a.source,
		onDrag:   func(v int) Msg { return DragSource{Value: v} },
		onCommit: CommitSource{},
	})
}

type volumeRowSpec struct {
	muteBtn  *widget.Clickable
	icon     *widget.Icon
	slider   *VolumeSlider
	value    int
	axis     *volumeAxis
	onDrag   func(int) Msg
	onCommit Msg
}

func (a *App) layoutVolumeRow(gtx layout.Context, spec volumeRowSpec) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return material.Clickable(gtx, spec.muteBtn, func(gtx layout.Context) layout.Dimensions {
						return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							return a.layoutIcon(gtx, spec.icon, 24)
						})
					})
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Flexed(5, func(gtx layout.Context) layout.Dimensions {
					return spec.slider.Layout(gtx, a.gv.Theme, spec.value, spec.axis.ceiling,
						spec.axis.breakpoints, spec.onDrag, spec.onCommit, a.dispatch)
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body1(a.gv.Theme, fmt.Sprintf("%d%%", spec.value))
					lbl.Color = a.gv.Palette.Fg
					return layout.E.Layout(gtx, lbl.Layout)
				}),
			)
		})
}

type revealerSpec struct {
	header   *widget.Clickable
	title    string
	selected string
	devices  []audio.Device
	active   int
	buttons  *[]widget.Clickable
	open     bool
	toggle   Msg
	choose   func(int) Msg
}

// layoutRevealer is an expandable device list with a header showing the
// current selection.
func (a *App) layoutRevealer(gtx layout.Context, spec revealerSpec) layout.Dimensions {
	if spec.header.Clicked(gtx) {
		a.dispatch(spec.toggle)
	}
	ensureClickables(spec.buttons, len(spec.devices))

	selected := spec.selected
	if selected == "" {
		selected = "No Device"
	}

	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Clickable(gtx, spec.header, func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
							layout.Rigid(material.Body1(a.gv.Theme, spec.title).Layout),
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								sub := material.Caption(a.gv.Theme, selected)
								sub.Color = dim(a.gv.Palette.Fg, 180)
								return sub.Layout(gtx)
							}),
						)
					})
			})
		}),
	}

	if spec.open {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			// Expansion slides open: the list is clipped to a growing height.
			p := a.expandAnim.progress(gtx.Now, revealDuration)
			macro := op.Record(gtx.Ops)
			dims := a.layoutDeviceList(gtx, spec)
			call := macro.Stop()

			h := int(p * float32(dims.Size.Y))
			defer clip.Rect(image.Rectangle{Max: image.Pt(dims.Size.X, h)}).Push(gtx.Ops).Pop()
			call.Add(gtx.Ops)
			return layout.Dimensions{Size: image.Pt(dims.Size.X, h)}
		}))
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (a *App) layoutDeviceList(gtx layout.Context, spec revealerSpec) layout.Dimensions {
	var rows []layout.FlexChild
	for i := range spec.devices {
		i := i
		rows = append(rows, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			btn := &(*spec.buttons)[i]
			if btn.Clicked(gtx) {
				a.dispatch(spec.choose(i))
			}
			return material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(32), Right: unit.Dp(8)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body2(a.gv.Theme, spec.devices[i].Description)
						if i == spec.active {
							lbl.Color = a.gv.Palette.ContrastBg
						}
						return lbl.Layout(gtx)
					})
			})
		}))
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, rows...)
}

// layoutMedia is the media transport block, shown only while a player
// status is available.
func (a *App) layoutMedia(gtx layout.Context) layout.Dimensions {
	s := a.player
	if s == nil {
		return layout.Dimensions{}
	}

	if a.prevBtn.Clicked(gtx) {
		a.dispatch(Media{Cmd: Previous})
	}
	if a.nextBtn.Clicked(gtx) {
		a.dispatch(Media{Cmd: Next})
	}
	if a.playPauseBtn.Clicked(gtx) {
		if s.Playback == mpris.Playing {
			a.dispatch(Media{Cmd: Pause})
		} else {
			a.dispatch(Media{Cmd: Play})
		}
	}

	artists := "Unknown artist"
	if len(s.Artists) > 0 {
		artists = strings.Join(s.Artists, ", ")
	}

	return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Left: unit.Dp(24), Right: unit.Dp(24)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					if img, ok := a.art.load(s.ArtPath); ok {
						return widget.Image{Src: img, Fit: widget.Contain}.Layout(gtx)
					}
					return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return a.layoutIcon(gtx, a.icons.album, 96)
					})
				})
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				var controls []layout.FlexChild
				if s.CanGoPrevious {
					controls = append(controls, a.mediaButton(&a.prevBtn, a.icons.skipPrev))
				}
				if s.Playback == mpris.Playing {
					controls = append(controls, a.mediaButton(&a.playPauseBtn, a.icons.pause))
				} else {
					controls = append(controls, a.mediaButton(&a.playPauseBtn, a.icons.play))
				}
				if s.CanGoNext {
					controls = append(controls, a.mediaButton(&a.nextBtn, a.icons.skipNext))
				}
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, controls...)
				})
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Center.Layout(gtx, material.Body1(a.gv.Theme, s.Title).Layout)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				sub := material.Caption(a.gv.Theme, artists)
				sub.Color = dim(a.gv.Palette.Fg, 180)
				return layout.Center.Layout(gtx, sub.Layout)
			}),
		)
	})
}

func (a *App) mediaButton(btn *widget.Clickable, icon *widget.Icon) layout.FlexChild {
	return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return a.layoutIcon(gtx, icon, 32)
				})
			})
		})
	})
}

// layoutSettingsRow launches the system sound settings.
func (a *App) layoutSettingsRow(gtx layout.Context) layout.Dimensions {
	if a.settingsBtn.Clicked(gtx) {
		a.dispatch(OpenSettings{})
	}
	return material.Clickable(gtx, &a.settingsBtn, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return a.layoutIcon(gtx, a.icons.settings, 20)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(material.Body1(a.gv.Theme, "Sound settings").Layout),
				)
			})
	})
}

func (a *App) layoutDivider(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			col := dim(a.gv.Palette.Fg, 40)
			sz := image.Pt(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(1)))
			paint.FillShape(gtx.Ops, col, clip.Rect{Max: sz}.Op())
			return layout.Dimensions{Size: sz}
		})
}

func (a *App) layoutIcon(gtx layout.Context, icon *widget.Icon, size unit.Dp) layout.Dimensions {
	px := gtx.Dp(size)
	if icon == nil {
		return layout.Dimensions{Size: image.Pt(px, px)}
	}
	gtx.Constraints.Min = image.Pt(px, px)
	gtx.Constraints.Max = gtx.Constraints.Min
	return icon.Layout(gtx, a.gv.Palette.Fg)
}

func ensureClickables(s *[]widget.Clickable, n int) {
	for len(*s) < n {
		*s = append(*s, widget.Clickable{})
	}
}

// dim lowers a color's alpha.
func dim(c color.NRGBA, alpha uint8) color.NRGBA {
	c.A = alpha
	return c
}
