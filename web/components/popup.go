package components

import (
	"context"
	"fmt"
	"io"
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

const buttonClass = "chromium-button min-h-8 min-w-16 rounded-2xl border px-4 py-2 text-center leading-5 disabled:cursor-not-allowed"

// ErrorClass returns the classes of the inline length error container.
func ErrorClass(show bool) string {
	if show {
		return twmerge.Merge("chromium-error-container", "show-error")
	}
	return twmerge.Merge("chromium-error-container", "hide-error")
}

// ButtonRowClass returns the classes of the action button row, which moves
// down while the length error is visible.
func ButtonRowClass(withError bool) string {
	base := "chromium-button-container flex items-center gap-2"
	if withError {
		return twmerge.Merge(base, "with-error")
	}
	return twmerge.Merge(base, "without-error")
}

// Popup renders the full popup page.
func Popup(p PopupProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := templ.EscapeString
		l := p.Labels
		size := strconv.Itoa(p.DisplaySize)
		disabled := ""
		if p.Disabled {
			disabled = " disabled"
		}
		previewHidden, errorHidden := "", " hidden"
		if p.Error != "" {
			previewHidden, errorHidden = " hidden", ""
		}
		if !p.HasData {
			previewHidden = " hidden"
		}

		_, err := fmt.Fprintf(w, pageTemplate,
			e(p.Lang), e(l.Title), pageStyle,
			e(l.Copy), e(l.Copied), p.MaxLength,
			e(l.Title), e(l.Shortcut), e(l.Close),
			size, size,
			previewHidden, e(l.PreviewAlt), size, size, p.Revision,
			errorHidden, e(p.Error),
			e(p.Input), e(l.InputLabel), e(l.Placeholder), p.MaxLength,
			ErrorClass(p.LengthError != ""), e(p.LengthError),
			ButtonRowClass(p.LengthError != ""),
			e(l.Tips),
			buttonClass, disabled, e(l.Copy),
			buttonClass, disabled, e(l.Download),
			pageScript,
		)
		return err
	})
}

const pageTemplate = `<!DOCTYPE html>
<html lang="%s">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>%s</style>
</head>
<body data-copy="%s" data-copied="%s" data-max="%d">
<div class="chromium-bubble flex w-80 flex-col p-0 leading-5">
  <div class="chromium-title-bar flex min-h-10 items-center justify-between px-4 py-3">
    <div class="flex items-center gap-2">
      <h2 class="chromium-title text-sm font-medium">%s</h2>
      <span class="text-xs text-gray-500 opacity-70">%s</span>
    </div>
    <button type="button" class="chromium-close-button" aria-label="%s" onclick="window.close()">&times;</button>
  </div>
  <div class="chromium-qr-container" style="width:%spx;height:%spx">
    <img id="qr-preview" class="qr-preview%s" alt="%s" width="%s" height="%s" data-revision="%d" src="">
    <div id="qr-error" class="chromium-qr-error%s" role="alert">%s</div>
  </div>
  <div class="chromium-input-container">
    <input id="qr-input" class="chromium-input text-sm" type="text" value="%s" aria-label="%s" placeholder="%s" maxlength="%d" autofocus>
  </div>
  <div id="qr-length-error" class="%s"><div class="chromium-error-text">%s</div></div>
  <div id="qr-actions" class="%s">
    <div class="chromium-tooltip-icon" title="%s">&#9432;</div>
    <div class="flex-1"></div>
    <button id="qr-copy" type="button" class="%s"%s>%s</button>
    <button id="qr-download" type="button" class="%s"%s>%s</button>
  </div>
</div>
<div id="toasts"></div>
<script>%s</script>
</body>
</html>
`

const pageStyle = `
body{margin:0;font:13px/1.25 system-ui,sans-serif;background:#f1f3f4}
.chromium-bubble{width:320px;background:#fff;border-radius:8px;box-shadow:0 2px 6px rgba(0,0,0,.2);margin:16px auto;display:flex;flex-direction:column}
.chromium-title-bar{display:flex;justify-content:space-between;align-items:center;padding:12px 16px}
.chromium-title{margin:0;font-size:14px;font-weight:500}
.chromium-close-button{border:0;background:none;font-size:18px;width:24px;height:24px;border-radius:50%;cursor:pointer}
.chromium-qr-container{position:relative;align-self:center;display:flex;align-items:center;justify-content:center;border:2px solid #dadce0;border-radius:4px;background:#fff;overflow:hidden}
.qr-preview{width:100%;height:100%;image-rendering:auto}
.chromium-qr-error{padding:16px;text-align:center;color:#5f6368}
.chromium-input-container{padding:16px 16px 0}
.chromium-input{width:100%;box-sizing:border-box;padding:6px 8px;border:1px solid #dadce0;border-radius:4px}
.chromium-error-container{padding:4px 16px 0;color:#d93025;font-size:12px}
.hide-error{display:none}
.chromium-button-container{display:flex;align-items:center;gap:8px;padding:16px}
.chromium-button{border:1px solid #dadce0;border-radius:16px;background:#fff;color:#1a73e8;padding:6px 16px;min-width:64px;cursor:pointer}
.chromium-button:disabled{color:#9aa0a6;cursor:not-allowed}
.chromium-tooltip-icon{width:16px;height:16px;color:#5f6368;cursor:help}
.flex-1{flex:1}
.hidden{display:none}
`

const pageScript = `
(function(){
  var input=document.getElementById('qr-input'),
      img=document.getElementById('qr-preview'),
      errBox=document.getElementById('qr-error'),
      lenErr=document.getElementById('qr-length-error'),
      actions=document.getElementById('qr-actions'),
      copyBtn=document.getElementById('qr-copy'),
      dlBtn=document.getElementById('qr-download'),
      labels=document.body.dataset, poll=null, feedback=null;

  function apply(s){
    var lengthErr=s.showInputLengthError;
    lenErr.className='chromium-error-container '+(lengthErr?'show-error':'hide-error');
    lenErr.firstChild.textContent=lengthErr?s.error:'';
    actions.classList.toggle('with-error',lengthErr);
    actions.classList.toggle('without-error',!lengthErr);
    var other=s.error&&!lengthErr;
    errBox.textContent=other?s.error:'';
    errBox.classList.toggle('hidden',!other);
    img.classList.toggle('hidden',!s.hasData||other);
    if(s.hasData&&img.dataset.revision!==String(s.revision)){
      img.dataset.revision=String(s.revision);
      img.src='/api/preview.png?rev='+s.revision;
    }
    copyBtn.disabled=dlBtn.disabled=s.disabled;
  }

  function refresh(want){
    clearTimeout(poll);
    fetch('/api/state').then(function(r){return r.json()}).then(function(s){
      apply(s);
      if(s.pending||s.loading||s.input!==want){
        poll=setTimeout(function(){refresh(want)},150);
      }
    });
  }

  input.addEventListener('input',function(){
    var text=input.value;
    fetch('/api/input',{method:'POST',headers:{'Content-Type':'application/json'},body:JSON.stringify({text:text})})
      .then(function(){refresh(text)});
  });

  function flash(){
    copyBtn.textContent=labels.copied;
    clearTimeout(feedback);
    feedback=setTimeout(function(){copyBtn.textContent=labels.copy},1500);
  }

  function serverCopy(){
    return fetch('/api/copy',{method:'POST'}).then(function(r){return r.text()}).then(function(html){
      var box=document.getElementById('toasts');
      box.innerHTML=html;
      var t=box.querySelector('[data-toast]'),ms=t?Number(t.dataset.duration):0;
      if(ms>0)setTimeout(function(){t.remove()},ms);
    });
  }

  copyBtn.addEventListener('click',function(){
    if(!navigator.clipboard||!window.ClipboardItem){serverCopy();return}
    fetch('/api/export.png').then(function(r){
      if(!r.ok)throw new Error('export failed');
      return r.blob();
    }).then(function(blob){
      return navigator.clipboard.write([new ClipboardItem({'image/png':blob})]);
    }).then(flash).catch(function(){
      navigator.clipboard.writeText(input.value).then(flash).catch(function(e){console.error('copy failed',e)});
    });
  });

  dlBtn.addEventListener('click',function(){window.location='/api/download'});

  if(img.dataset.revision!=='0')img.src='/api/preview.png?rev='+img.dataset.revision;
  if(input.value&&img.dataset.revision==='0'){input.dispatchEvent(new Event('input'))}
})();
`
