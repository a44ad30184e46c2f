package browser

// The snippets below run inside the page. Each is a function expression
// Playwright invokes with the single argument the Go side passes in.
// They only return JSON-serialisable values.

// formControlsScript enumerates field candidates: text-capable inputs
// (excluding types hidden, submit, button), textareas, and selects, in
// document order, tagging each with a ref and harvesting its identifying
// signals. Label lookup prefers the explicit association, then falls
// back to label[for=id].
const formControlsScript = `(prefix) => {
	const skip = { hidden: true, submit: true, button: true };
	const controls = [];
	let i = 0;
	for (const el of document.querySelectorAll('input, textarea, select')) {
		const tag = el.tagName.toLowerCase();
		const type = (el.getAttribute('type') || '').toLowerCase();
		if (tag === 'input' && skip[type]) {
			continue;
		}
		const ref = prefix + '-' + i++;
		el.setAttribute('data-pagevoice-ref', ref);

		let label = '';
		if (el.labels && el.labels.length > 0) {
			label = el.labels[0].innerText || el.labels[0].textContent || '';
		} else if (el.id) {
			const l = document.querySelector('label[for="' + CSS.escape(el.id) + '"]');
			if (l) {
				label = l.innerText || l.textContent || '';
			}
		}

		controls.push({
			ref: ref,
			tag: tag,
			type: type,
			id: el.id || '',
			name: el.getAttribute('name') || '',
			label: label,
			placeholder: el.getAttribute('placeholder') || '',
			ariaLabel: el.getAttribute('aria-label') || '',
		});
	}
	return controls;
}`

// clickablesScript enumerates click candidates in document order,
// tagging each with a ref and harvesting the text signals visible text
// is derived from.
const clickablesScript = `(prefix) => {
	const selector = 'button, input[type="submit"], input[type="button"], a, [role="button"]';
	const clickables = [];
	let i = 0;
	for (const el of document.querySelectorAll(selector)) {
		const ref = prefix + '-' + i++;
		el.setAttribute('data-pagevoice-ref', ref);
		clickables.push({
			ref: ref,
			innerText: el.innerText || '',
			value: el.getAttribute('value') || '',
			textContent: el.textContent || '',
		});
	}
	return clickables;
}`

// setValueScript sets a form control's value and fires the input and
// change events a real user interaction would.
const setValueScript = `(arg) => {
	const el = document.querySelector(arg.selector);
	if (!el) {
		throw new Error('element not found: ' + arg.selector);
	}
	el.value = arg.value;
	el.dispatchEvent(new Event('input', { bubbles: true }));
	el.dispatchEvent(new Event('change', { bubbles: true }));
}`

const scrollByScript = `(fraction) => {
	window.scrollBy(0, window.innerHeight * fraction);
}`

const scrollTopScript = `() => {
	window.scrollTo(0, 0);
}`

const scrollBottomScript = `() => {
	window.scrollTo(0, document.body.scrollHeight);
}`

const scrollIntoViewScript = `(selector) => {
	const el = document.querySelector(selector);
	if (el) {
		el.scrollIntoView({ behavior: 'smooth', block: 'center' });
	}
}`

// swapStylesScript sets inline style properties and returns the previous
// inline values of exactly those properties. Restoring an empty string
// removes the property, which is what "was unset" round-trips to.
const swapStylesScript = `(arg) => {
	const el = document.querySelector(arg.selector);
	if (!el) {
		throw new Error('element not found: ' + arg.selector);
	}
	const previous = {};
	for (const prop of Object.keys(arg.styles)) {
		previous[prop] = el.style.getPropertyValue(prop);
		el.style.setProperty(prop, arg.styles[prop]);
	}
	return previous;
}`

// innerTextScript returns the rendered text of the first match, or null
// when nothing matches.
const innerTextScript = `(selector) => {
	const el = document.querySelector(selector);
	if (!el) {
		return null;
	}
	return el.innerText || el.textContent || '';
}`

const innerTextsScript = `(selector) => {
	return Array.from(document.querySelectorAll(selector)).map(
		(el) => el.innerText || el.textContent || ''
	);
}`

const hostnameScript = `() => window.location.hostname`
